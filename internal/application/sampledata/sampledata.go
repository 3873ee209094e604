// Package sampledata provides the students a new installation starts with.
package sampledata

import (
	"github.com/google/uuid"

	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/domain/tutorspet"
)

// namespace derives stable ids so repeated seeding yields equal aggregates.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("tutorspet:sample"))

type sample struct {
	name, phone, email string
	tags               []string
}

var samples = []sample{
	{"Alex Yeoh", "87438807", "alexyeoh@example.com", []string{"Average"}},
	{"Bernice Yu", "99272758", "berniceyu@example.com", []string{"Good", "Experienced"}},
	{"Charlotte Oliveiro", "93210283", "charlotte@example.com", []string{"Struggling"}},
	{"David Li", "91031282", "lidavid@example.com", []string{"Weak"}},
	{"Irfan Ibrahim", "92492021", "irfan@example.com", []string{"Struggling"}},
	{"Roy Balakrishnan", "92624417", "royb@example.com", []string{"Average"}},
}

// Students returns the sample students.
func Students() []student.Student {
	out := make([]student.Student, 0, len(samples))
	for _, s := range samples {
		tags := make([]shared.Tag, 0, len(s.tags))
		for _, t := range s.tags {
			tags = append(tags, must(shared.NewTag(t)))
		}
		out = append(out, must(student.NewStudent(student.NewStudentParams{
			ID:    uuid.NewSHA1(namespace, []byte(s.name)),
			Name:  must(shared.NewName(s.name)),
			Phone: must(shared.NewPhone(s.phone)),
			Email: must(shared.NewEmail(s.email)),
			Tags:  tags,
		})))
	}
	return out
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// TutorsPet returns an aggregate holding the sample students and no classes.
func TutorsPet() *tutorspet.TutorsPet {
	t := tutorspet.New()
	for _, s := range Students() {
		if err := t.AddStudent(s); err != nil {
			panic(err)
		}
	}
	return t
}
