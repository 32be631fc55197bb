package domain

import (
	"errors"
	"strings"
)

// ErrInvalidFacility неизвестное спортивное сооружение
var ErrInvalidFacility = errors.New("domain: invalid facility")

// Facility спортивное сооружение (espacio)
// В БД хранится отображаемое имя, в URL используется код
type Facility string

const (
	FacilityBasketball Facility = "Baloncesto"
	FacilityFootball   Facility = "Fútbol"
	FacilityPadel      Facility = "Padel"
	FacilityPool1      Facility = "Piscina1"
	FacilityPool2      Facility = "Piscina2"
)

// AllFacilities все сооружения в порядке отображения
var AllFacilities = []Facility{
	FacilityBasketball,
	FacilityFootball,
	FacilityPadel,
	FacilityPool1,
	FacilityPool2,
}

var facilityCodes = map[Facility]string{
	FacilityBasketball: "baloncesto",
	FacilityFootball:   "futbol",
	FacilityPadel:      "padel",
	FacilityPool1:      "piscina1",
	FacilityPool2:      "piscina2",
}

// ParseFacility разбирает код или имя сооружения без учета регистра
// "Fútbol", "futbol", "FUTBOL" и "fútbol" дают FacilityFootball
func ParseFacility(s string) (Facility, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "ú", "u")

	for facility, code := range facilityCodes {
		if key == code {
			return facility, nil
		}
	}
	return "", ErrInvalidFacility
}

// Code возвращает код сооружения для URL
func (f Facility) Code() string {
	return facilityCodes[f]
}

// Name возвращает отображаемое имя
func (f Facility) Name() string {
	return string(f)
}

// IsValid проверяет, что сооружение известно
func (f Facility) IsValid() bool {
	_, ok := facilityCodes[f]
	return ok
}
