package kernel

type ProfileID string

func NewProfileID(id string) ProfileID { return ProfileID(id) }
func (p ProfileID) String() string     { return string(p) }
func (p ProfileID) IsEmpty() bool      { return string(p) == "" }

type ScreeningID string

func NewScreeningID(id string) ScreeningID { return ScreeningID(id) }
func (s ScreeningID) String() string       { return string(s) }
func (s ScreeningID) IsEmpty() bool        { return string(s) == "" }

type RequirementID string

func NewRequirementID(id string) RequirementID { return RequirementID(id) }
func (r RequirementID) String() string         { return string(r) }
func (r RequirementID) IsEmpty() bool          { return string(r) == "" }
