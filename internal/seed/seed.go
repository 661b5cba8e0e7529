package seed

import (
	"fmt"
	"log"

	"yatube/internal/models"

	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers  int
	NumGroups int
	NumPosts  int
}

// Seeder populates the database with demo users, groups, and posts.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded content. Posts go first to satisfy foreign keys.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{&models.Post{}, &models.Group{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Run seeds users, groups, and posts per the options. Roughly two thirds of
// the posts get a group; the rest stay ungrouped so both feeds have content.
func (s *Seeder) Run(opts Options) error {
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seeding user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users (password %q)", len(users), DefaultPassword)

	groups := make([]*models.Group, 0, opts.NumGroups)
	for i := 0; i < opts.NumGroups; i++ {
		group, err := s.factory.CreateGroup()
		if err != nil {
			return fmt.Errorf("seeding group: %w", err)
		}
		groups = append(groups, group)
	}
	log.Printf("Seeded %d groups", len(groups))

	if len(users) == 0 {
		return nil
	}

	for i := 0; i < opts.NumPosts; i++ {
		author := users[s.factory.rand.Intn(len(users))]
		_, err := s.factory.CreatePost(author, func(p *models.Post) {
			if len(groups) > 0 && s.factory.rand.Intn(3) != 0 {
				p.GroupID = &groups[s.factory.rand.Intn(len(groups))].ID
			}
		})
		if err != nil {
			return fmt.Errorf("seeding post: %w", err)
		}
	}
	log.Printf("Seeded %d posts", opts.NumPosts)

	return nil
}
