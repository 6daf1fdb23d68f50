package entity

import (
	"errors"
)

// Native entity types (source/resource kinds and output writer kinds)
type EntityType string

const (
	EntityInvalid EntityType = "invalid"
	EntityFont    EntityType = "font"
	EntityCss     EntityType = "css"
	EntityJson    EntityType = "json"
	EntitySvg     EntityType = "svg"
)

var ReservedEntityNames = map[string]bool{
	string(EntityInvalid): true,
	string(EntityFont):    true,
	string(EntityCss):     true,
	string(EntityJson):    true,
	string(EntitySvg):     true,
}

// Config is the Entity Config to use with Source and Writer factories.
type Config struct {
	Spec       *Spec
	ID         string
	Path       string
	NotifyChan NotifyChan
	Log        bool
}

// ErrResourceNotSupported is returned by factories given a resource they
// cannot serve, e.g. an unreadable or malformed input file, leaving the
// decision on how to proceed to the caller.
var ErrResourceNotSupported = errors.New("resource not supported by this source type")
