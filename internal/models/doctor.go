package models

type Doctor struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Specialty string `json:"specialty" yaml:"specialty"`
}
