package memory

import (
	"sync"

	"github.com/omarshaarawi/fantasyfeed/internal/models"
)

// Repository holds process-local state: league metadata used to resolve the
// current week, and the outcome of recent sync passes.
type Repository struct {
	mu       sync.RWMutex
	metadata map[int64]*models.LeagueMetadata
	last     map[models.SyncPhase]models.SyncStatus
	lastRun  *models.SyncStatus
}

func NewRepository() *Repository {
	return &Repository{
		metadata: make(map[int64]*models.LeagueMetadata),
		last:     make(map[models.SyncPhase]models.SyncStatus),
	}
}

func (r *Repository) SaveMetadata(leagueID int64, metadata *models.LeagueMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metadata[leagueID] = metadata
}

func (r *Repository) GetMetadata(leagueID int64) *models.LeagueMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.metadata[leagueID]
}

func (r *Repository) SaveStatus(status models.SyncStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last[status.Phase] = status
	r.lastRun = &status
}

// LastStatus returns the most recent pass of any phase.
func (r *Repository) LastStatus() (models.SyncStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.lastRun == nil {
		return models.SyncStatus{}, false
	}
	return *r.lastRun, true
}

func (r *Repository) StatusFor(phase models.SyncPhase) (models.SyncStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	status, ok := r.last[phase]
	return status, ok
}
