// Package router maps editor locations to views.
package router

import (
	"strconv"
	"strings"
)

// View is one of the editor screens.
type View int

const (
	List View = iota
	Detail
	Create
)

func (v View) String() string {
	switch v {
	case Detail:
		return "detail"
	case Create:
		return "create"
	default:
		return "list"
	}
}

const (
	ListPath   = "/events"
	CreatePath = "/events/new"
)

// Route is a resolved location. ID and Segment are set for Detail only;
// ID is zero when Segment is not a valid event id.
type Route struct {
	View    View
	ID      int64
	Segment string
}

// Resolve maps path to exactly one route. Anything unmatched is the list.
func Resolve(path string) Route {
	p := strings.TrimSuffix(path, "/")
	if p == CreatePath {
		return Route{View: Create}
	}
	rest, ok := strings.CutPrefix(p, ListPath+"/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return Route{View: List}
	}
	r := Route{View: Detail, Segment: rest}
	if id, err := strconv.ParseInt(rest, 10, 64); err == nil && id > 0 {
		r.ID = id
	}
	return r
}

// ToList is the list location.
func ToList() Route { return Route{View: List} }

// ToCreate is the creation form location.
func ToCreate() Route { return Route{View: Create} }

// ToDetail is the location of event id.
func ToDetail(id int64) Route {
	return Route{View: Detail, ID: id, Segment: strconv.FormatInt(id, 10)}
}

// Path renders the canonical location of r.
func (r Route) Path() string {
	switch r.View {
	case Create:
		return CreatePath
	case Detail:
		return ListPath + "/" + r.Segment
	default:
		return ListPath
	}
}
