// seed inserts a teacher, two classes, a handful of students and grades
// into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mpartaud/school-records/internal/auth"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/infrastructure/postgres"
	"github.com/mpartaud/school-records/internal/repository"
)

type studentSpec struct {
	username string
	email    string
	grades   []gradeSpec
}

type gradeSpec struct {
	name  string
	value int
}

var classes = []string{"6eme A", "6eme B"}

var students = []studentSpec{
	{"alice", "alice@school.local", []gradeSpec{{"Maths - fractions", 15}, {"History - romans", 12}}},
	{"bruno", "bruno@school.local", []gradeSpec{{"Maths - fractions", 9}}},
	{"chloe", "chloe@school.local", []gradeSpec{{"Maths - fractions", 18}, {"History - romans", 14}}},
	{"david", "david@school.local", nil},
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	classRepo := postgres.NewClassRepository(pool)
	gradeRepo := postgres.NewGradeRepository(pool)
	hasher := auth.NewHasher(10)

	classIDs := make([]int64, 0, len(classes))
	for _, name := range classes {
		class, err := classRepo.Create(ctx, name)
		if err != nil {
			log.Fatalf("create class %q: %v", name, err)
		}
		classIDs = append(classIDs, class.ID)
		fmt.Printf("class %-8s -> id %d\n", name, class.ID)
	}

	digest, err := hasher.Hash("password")
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	teacher, err := userRepo.Create(ctx, repository.CreateUserInput{
		Username: "prof",
		Password: digest,
		Email:    "prof@school.local",
		Role:     domain.RoleTeacher,
	})
	if err != nil {
		log.Fatalf("create teacher: %v", err)
	}
	fmt.Printf("teacher  %-8s -> id %d (password: password)\n", teacher.Username, teacher.ID)

	for i, s := range students {
		classID := classIDs[i%len(classIDs)]
		student, err := userRepo.Create(ctx, repository.CreateUserInput{
			Username: s.username,
			Password: digest,
			Email:    s.email,
			Role:     "Student",
			ClassID:  &classID,
		})
		if err != nil {
			log.Fatalf("create student %q: %v", s.username, err)
		}
		fmt.Printf("student  %-8s -> id %d\n", student.Username, student.ID)

		for _, g := range s.grades {
			if _, err := gradeRepo.Create(ctx, repository.CreateGradeInput{
				Name:   g.name,
				Value:  g.value,
				UserID: student.ID,
			}); err != nil {
				log.Fatalf("create grade for %q: %v", s.username, err)
			}
		}
	}

	fmt.Println("seed done")
}
