// Package seed holds the fixture catalog loaded at startup. The in-memory
// fallback always starts from these records; cmd/seed loads the same set
// into Postgres for fresh deployments.
package seed

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
)

// TeacherFixture pairs a teacher account with its plaintext fixture
// password; hashing happens at load time with the configured cost.
type TeacherFixture struct {
	Username    string
	DisplayName string
	Password    string
	Role        model.Role
}

// Activities is the school's initial extracurricular catalog.
func Activities() []model.Activity {
	return []model.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
		},
		{
			Name:            "Soccer Team",
			Description:     "Join the school soccer team and compete in matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
		},
		{
			Name:            "Art Club",
			Description:     "Explore painting, drawing, and other visual arts",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct, and produce school theater performances",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
		},
		{
			Name:            "Math Olympiad",
			Description:     "Advanced problem solving and math competition prep",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 10,
		},
		{
			Name:            "Debate Team",
			Description:     "Develop argumentation skills and compete in debates",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 16,
		},
	}
}

// Teachers is the initial staff roster. Fixture passwords are for local
// development; production deployments create accounts via cmd/create-teacher.
func Teachers() []TeacherFixture {
	return []TeacherFixture{
		{Username: "mrodriguez", DisplayName: "Ms. Rodriguez", Password: "art123", Role: model.RoleTeacher},
		{Username: "mchen", DisplayName: "Mr. Chen", Password: "chess456", Role: model.RoleTeacher},
		{Username: "principal", DisplayName: "Principal Martinez", Password: "admin789", Role: model.RoleAdmin},
	}
}

// Load inserts the fixture catalog into a store, skipping records that
// already exist so it is safe to run against a non-empty database.
func Load(ctx context.Context, store repository.Store, bcryptCost int) error {
	for _, a := range Activities() {
		activity := a
		if err := store.Activities().Create(ctx, &activity); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return err
		}
	}

	for _, tf := range Teachers() {
		hash, err := bcrypt.GenerateFromPassword([]byte(tf.Password), bcryptCost)
		if err != nil {
			return err
		}
		teacher := &model.Teacher{
			Username:     tf.Username,
			DisplayName:  tf.DisplayName,
			PasswordHash: string(hash),
			Role:         tf.Role,
		}
		if err := store.Teachers().Create(ctx, teacher); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return err
		}
	}
	return nil
}
