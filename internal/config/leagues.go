package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// UnsetLeagueID marks a league whose ESPN id has not been filled in yet.
const UnsetLeagueID int64 = 0

type League struct {
	Name string `yaml:"name" validate:"required"`
	ID   int64  `yaml:"id" validate:"min=0"`
}

func (l League) Configured() bool {
	return l.ID != UnsetLeagueID
}

// Leagues decodes "Name=id,Name=id" and keeps the declared order.
type Leagues []League

func (l *Leagues) Decode(value string) error {
	var out Leagues
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		name, rawID, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return errors.Newf("league %q must be Name=id", pair)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
		if err != nil {
			return errors.Wrapf(err, "league %q has a non-numeric id", name)
		}
		out = append(out, League{Name: strings.TrimSpace(name), ID: id})
	}
	*l = out
	return nil
}

type leaguesFile struct {
	Leagues []League `yaml:"leagues"`
}

func LoadLeaguesFile(path string) (Leagues, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading leagues file %s", path)
	}

	var f leaguesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrapf(err, "parsing leagues file %s", path)
	}
	return Leagues(f.Leagues), nil
}
