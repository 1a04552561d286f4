// Package driver runs the frame loop that ties the pointer tracker, the
// entity and the particle field together, and records what happened.
package driver

import (
	"github.com/Garsondee/Neural-Entity/internal/entity"
	"github.com/Garsondee/Neural-Entity/internal/field"
)

// Profile is the environment budget.
type Profile int

const (
	ProfileFull Profile = iota
	ProfileConstrained
)

func (p Profile) String() string {
	switch p {
	case ProfileFull:
		return "full"
	case ProfileConstrained:
		return "constrained"
	default:
		return "unknown"
	}
}

// ProfileFor picks the constrained budget when constrained is set.
func ProfileFor(constrained bool) Profile {
	if constrained {
		return ProfileConstrained
	}
	return ProfileFull
}

// EntityConfig returns the entity budget for p.
func (p Profile) EntityConfig() entity.Config {
	if p == ProfileConstrained {
		return entity.ConstrainedConfig()
	}
	return entity.FullConfig()
}

// FieldConfig returns the particle budget for p.
func (p Profile) FieldConfig() field.Config {
	if p == ProfileConstrained {
		return field.ConstrainedConfig()
	}
	return field.FullConfig()
}

// Camera returns the orbit for p.
func (p Profile) Camera() Camera {
	if p == ProfileConstrained {
		return Camera{Radius: 8.5, AutoRate: 0.025, PointerYaw: 0.7, PointerPitch: 0.35, PolarMargin: 0.3}
	}
	return Camera{Radius: 5, AutoRate: 0.06, PointerYaw: 0.7, PointerPitch: 0.35, PolarMargin: 0.3}
}
