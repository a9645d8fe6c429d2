package course

type Course struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Description string              `json:"description"`
	Price       float64             `json:"price"`
	ImageURL    string              `json:"imageUrl"`
	Duration    int                 `json:"duration"`
	Instructor  string              `json:"instructor"`
	MaxStudents int                 `json:"maxStudents"`
	Level       string              `json:"level"`
	Equipment   []string            `json:"equipment"`
	Schedule    map[string][]string `json:"schedule"`
}

// Form is a complete course as submitted by the admin console.
type Form struct {
	Name        string              `json:"name" binding:"required,min=2"`
	Type        string              `json:"type" binding:"required"`
	Description string              `json:"description"`
	Price       float64             `json:"price" binding:"gte=0"`
	ImageURL    string              `json:"imageUrl"`
	Duration    int                 `json:"duration" binding:"gt=0"`
	Instructor  string              `json:"instructor"`
	MaxStudents int                 `json:"maxStudents" binding:"gte=1"`
	Level       string              `json:"level" binding:"required,course_level"`
	Equipment   []string            `json:"equipment"`
	Schedule    map[string][]string `json:"schedule"`
}

func (f Form) Course() Course {
	equipment := f.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	schedule := f.Schedule
	if schedule == nil {
		schedule = map[string][]string{}
	}
	return Course{
		Name:        f.Name,
		Type:        f.Type,
		Description: f.Description,
		Price:       f.Price,
		ImageURL:    f.ImageURL,
		Duration:    f.Duration,
		Instructor:  f.Instructor,
		MaxStudents: f.MaxStudents,
		Level:       f.Level,
		Equipment:   equipment,
		Schedule:    schedule,
	}
}

// Patch carries the fields of a partial update; nil means unchanged.
type Patch struct {
	Name        *string             `json:"name" binding:"omitempty,min=2"`
	Type        *string             `json:"type" binding:"omitempty,min=1"`
	Description *string             `json:"description"`
	Price       *float64            `json:"price" binding:"omitempty,gte=0"`
	ImageURL    *string             `json:"imageUrl"`
	Duration    *int                `json:"duration" binding:"omitempty,gt=0"`
	Instructor  *string             `json:"instructor"`
	MaxStudents *int                `json:"maxStudents" binding:"omitempty,gte=1"`
	Level       *string             `json:"level" binding:"omitempty,course_level"`
	Equipment   []string            `json:"equipment"`
	Schedule    map[string][]string `json:"schedule"`
}

// Fields returns the set fields keyed by their stored name.
func (p Patch) Fields() map[string]interface{} {
	out := make(map[string]interface{})
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.Type != nil {
		out["type"] = *p.Type
	}
	if p.Description != nil {
		out["description"] = *p.Description
	}
	if p.Price != nil {
		out["price"] = *p.Price
	}
	if p.ImageURL != nil {
		out["imageUrl"] = *p.ImageURL
	}
	if p.Duration != nil {
		out["duration"] = *p.Duration
	}
	if p.Instructor != nil {
		out["instructor"] = *p.Instructor
	}
	if p.MaxStudents != nil {
		out["maxStudents"] = *p.MaxStudents
	}
	if p.Level != nil {
		out["level"] = *p.Level
	}
	if p.Equipment != nil {
		out["equipment"] = p.Equipment
	}
	if p.Schedule != nil {
		out["schedule"] = p.Schedule
	}
	return out
}
