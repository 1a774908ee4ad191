package domain

// Status is the lifecycle state shared by advertisers, campaigns and ads.
// New entities start in StatusPending until they are approved. StatusPaused
// means the owner explicitly disabled the entity; an entity may still be
// inactive with StatusActive for other reasons (caps reached, outside its
// schedule window) which are checked downstream, not here.
type Status int

const (
	StatusPending Status = iota + 1
	StatusActive
	StatusPaused
	StatusDeleted
)

var statusNames = map[Status]string{
	StatusPending: "Pending",
	StatusActive:  "Active",
	StatusPaused:  "Paused",
	StatusDeleted: "Deleted",
}

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}
