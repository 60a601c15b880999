package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omarshaarawi/fantasyfeed/internal/config"
)

func TestInitUptraceDisabledWithoutDSN(t *testing.T) {
	shutdown := InitUptrace(config.Uptrace{DSN: "  ", ServiceName: "fantasyfeed"})
	assert.NoError(t, shutdown(context.Background()))
}
