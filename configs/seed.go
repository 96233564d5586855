package configs

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Bombastion/taproom-offering-engine/repository"
)

// SeedFixtures copies the fixture folder into an empty database.
func SeedFixtures(ctx context.Context, p *repository.GormProvider, dir string, log logrus.FieldLogger) error {
	f, err := repository.LoadFixtures(dir)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"dir":   dir,
		"menus": len(f.Menus),
		"items": len(f.Items),
	}).Info("seeding database from fixtures")
	return p.SeedFromFixtures(ctx, f)
}
