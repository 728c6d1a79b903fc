package services

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harentsoaR/clinic-mock-api/internal/models"
)

var defaultDoctors = []models.Doctor{
	{ID: "1", Name: "Dr. Smith", Specialty: "Cardiology"},
	{ID: "2", Name: "Dr. Johnson", Specialty: "Pediatrics"},
	{ID: "3", Name: "Dr. Williams", Specialty: "Dermatology"},
}

// DoctorDirectory is a read-only list of doctors fixed at construction.
type DoctorDirectory struct {
	doctors []models.Doctor
}

func NewDoctorDirectory(doctors []models.Doctor) *DoctorDirectory {
	if len(doctors) == 0 {
		doctors = defaultDoctors
	}
	own := make([]models.Doctor, len(doctors))
	copy(own, doctors)
	return &DoctorDirectory{doctors: own}
}

// LoadDoctorDirectory reads a YAML list of doctors from path. An empty path
// yields the built-in directory.
func LoadDoctorDirectory(path string) (*DoctorDirectory, error) {
	if path == "" {
		return NewDoctorDirectory(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read doctors file: %w", err)
	}
	var doctors []models.Doctor
	if err := yaml.Unmarshal(data, &doctors); err != nil {
		return nil, fmt.Errorf("parse doctors file: %w", err)
	}
	if len(doctors) == 0 {
		return nil, errors.New("doctors file lists no doctors")
	}
	for i, d := range doctors {
		if d.ID == "" {
			return nil, fmt.Errorf("doctor at index %d has no id", i)
		}
	}
	return NewDoctorDirectory(doctors), nil
}

// ListDoctors returns a copy of the directory in declaration order.
func (d *DoctorDirectory) ListDoctors() []models.Doctor {
	out := make([]models.Doctor, len(d.doctors))
	copy(out, d.doctors)
	return out
}

func (d *DoctorDirectory) IDs() []string {
	ids := make([]string, len(d.doctors))
	for i, doc := range d.doctors {
		ids[i] = doc.ID
	}
	return ids
}
