package helpers

import (
	"github.com/robfig/cron/v3"
)

// Schedule starts a cron running fn on the given spec
func Schedule(spec string, fn func()) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, fn); err != nil {
		return nil, err
	}
	c.Start()

	return c, nil
}
