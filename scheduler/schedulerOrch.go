package scheduler

import (
	"fmt"

	"fairwayBook/scheduler/scheduler_jobs"
	"fairwayBook/services/common"
	"fairwayBook/services/settleService"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func SetupCron(db *gorm.DB, orch *settleService.SettleOrch) {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc("0 0 */1 * * *", func() {
		// Every hour: settle any tournament with pending picks
		err := scheduler_jobs.CheckRoundEnd(db, orch)
		if err != nil {
			fmt.Println(err)
		}
	})
	_, err = cronService.AddFunc("0 */15 * * * 0,4-6", func() {
		// Every 15 minutes Thursday through Sunday, when rounds finish
		err := scheduler_jobs.CheckRoundEnd(db, orch)
		if err != nil {
			fmt.Println(err)
		}
	})

	if err != nil {
		common.LogError(db, "CRON ERR", err)
	}

	cronService.Start()
}
