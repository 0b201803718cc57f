package dataset

import "fmt"

// Role determines how a record is consumed: fitting (train) or retrieval
// evaluation (query matched against gallery).
type Role string

const (
	RoleTrain   Role = "train"
	RoleQuery   Role = "query"
	RoleGallery Role = "gallery"
)

var allRoles = []Role{RoleTrain, RoleQuery, RoleGallery}

// Roles returns the partition roles in their canonical order.
func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole validates a role label read from a persisted annotation file.
func ParseRole(value string) (Role, error) {
	role := Role(value)
	for _, known := range allRoles {
		if role == known {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown partition role %q", value)
}

// ClassIndex is an optional training class index in [0, K). It replaces
// the magic unset sentinel of earlier annotation formats: rows outside the
// train role are never Valid, so an unset index can never alias a real one.
type ClassIndex struct {
	Index int
	Valid bool
}

// NewClassIndex returns a valid class index.
func NewClassIndex(index int) ClassIndex {
	return ClassIndex{Index: index, Valid: true}
}

// Record is one annotation row describing a single source image.
// Records are immutable once written to a store; the build phase creates
// them, attaches the class index (train only), and persists them.
type Record struct {
	ImageName      string
	ImagePath      string
	IdentityID     string
	CameraID       string
	SequenceID     string
	FrameNo        string
	DetectionBoxNo string
	Role           Role
	Class          ClassIndex
}
