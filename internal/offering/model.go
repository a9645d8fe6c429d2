package offering

// Offering is an extra the studio advertises next to its classes, stored
// under the services resource.
type Offering struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Form struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description" binding:"max=1000"`
	Icon        string `json:"icon" binding:"max=50"`
}

type Patch struct {
	Name        *string `json:"name" binding:"omitempty,min=2"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Icon        *string `json:"icon" binding:"omitempty,max=50"`
}

func (p Patch) Fields() map[string]interface{} {
	out := make(map[string]interface{})
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.Description != nil {
		out["description"] = *p.Description
	}
	if p.Icon != nil {
		out["icon"] = *p.Icon
	}
	return out
}
