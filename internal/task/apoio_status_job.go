package task

import (
	"sync"
	"time"

	"github.com/apoiacoletivo/acs/internal/config"
	"github.com/apoiacoletivo/acs/internal/logger"
	"github.com/apoiacoletivo/acs/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// ApoioStatusJob sweeps active campaigns whose raised amount reached the
// goal and marks them concluído. Contributions recorded through the flow
// flip the status inline; this covers rows edited directly in the store.
type ApoioStatusJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewApoioStatusJob creates the campaign status job.
func NewApoioStatusJob(db *gorm.DB, cfg *config.Config) *ApoioStatusJob {
	return &ApoioStatusJob{
		db:     db,
		config: cfg,
	}
}

// GetName returns the job name.
func (j *ApoioStatusJob) GetName() string {
	return "apoio_status_updater"
}

// GetSchedule returns the schedule definition.
func (j *ApoioStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute runs one sweep.
func (j *ApoioStatusJob) Execute() {
	logger.Debug("Starting apoio status sweep")

	var apoios []model.ApoioModel
	err := j.db.Where("status = ? AND valor_atual >= meta_valor", model.ApoioStatusAtivo).
		Find(&apoios).Error
	if err != nil {
		logger.Error("Failed to fetch apoios for status sweep: %v", err)
		return
	}

	if len(apoios) == 0 {
		return
	}

	// Temporary pool sized to the batch for the per-row updates.
	pool, err := ants.NewPool(len(apoios))
	if err != nil {
		logger.Error("Failed to create pool for %d apoios: %v", len(apoios), err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range apoios {
		apoio := apoios[i]

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()

			result := j.db.Model(&model.ApoioModel{}).
				Where("id = ? AND status = ?", apoio.Id, model.ApoioStatusAtivo).
				Update("status", model.ApoioStatusConcluido)
			if result.Error != nil {
				logger.Error("Failed to finish apoio %s: %v", apoio.Id, result.Error)
				return
			}
			if result.RowsAffected > 0 {
				logger.Info("Apoio %s reached its goal, marked concluído", apoio.Id)
			}
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit status update for apoio %s: %v", apoio.Id, err)
		}
	}
	wg.Wait()

	logger.Debug("Apoio status sweep completed, checked %d apoios", len(apoios))
}
