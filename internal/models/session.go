package models

// User types recognised by the backend
const (
	UserTypeStudent = "student"
	UserTypeTeacher = "teacher"
	UserTypeStaff   = "staff"
)

// UserSession is the logged-in identity kept in the session slot, in the
// shape the login endpoints return it. Students and teachers carry userId;
// staff carry staffId.
type UserSession struct {
	UserID      string `json:"userId,omitempty"`
	StaffID     string `json:"staffId,omitempty"`
	Type        string `json:"type,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	ClassName   string `json:"className,omitempty"`
	AdmissionID string `json:"admissionId,omitempty"`

	Extra Extra `json:"-"`
}

type userSessionFields UserSession

// UnmarshalJSON keeps members without a typed field in Extra
func (u *UserSession) UnmarshalJSON(data []byte) error {
	var fields userSessionFields
	extra, err := decodeRecord(data, &fields)
	if err != nil {
		return err
	}
	*u = UserSession(fields)
	u.Extra = extra
	return nil
}

// MarshalJSON writes the typed members followed by Extra
func (u UserSession) MarshalJSON() ([]byte, error) {
	return encodeRecord(userSessionFields(u), u.Extra)
}

// ID returns the user id, or the staff id for staff logins
func (u UserSession) ID() string {
	if u.UserID != "" {
		return u.UserID
	}
	return u.StaffID
}

// IsStaff reports whether the session belongs to canteen staff
func (u UserSession) IsStaff() bool {
	return u.Type == UserTypeStaff
}
