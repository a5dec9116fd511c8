package reader

import (
	"github.com/erraggy/oasmodels/model"
)

// GroupModels is the ordered list of canonical models accepted while
// scanning one resource group.
type GroupModels struct {
	Group  model.ResourceGroup
	Models []*model.Model
}

// Stats summarizes one read pass.
type Stats struct {
	Groups       int `json:"groups" yaml:"groups"`
	Operations   int `json:"operations" yaml:"operations"`
	Branches     int `json:"branches" yaml:"branches"`
	Collected    int `json:"collected" yaml:"collected"`
	Canonical    int `json:"canonical" yaml:"canonical"`
	Deduplicated int `json:"deduplicated" yaml:"deduplicated"`
	Contexts     int `json:"contexts" yaml:"contexts"`
	MaxPasses    int `json:"max_passes" yaml:"max_passes"`
}

// ReadResult is the outcome of a read pass: per resource group, the
// canonical models first accepted in that group.
type ReadResult struct {
	Groups   []*GroupModels
	Warnings Warnings
	Stats    Stats

	finalizer *Finalizer
}

// ByGroup returns the canonical models keyed by group name. Groups sharing a
// name are concatenated in scan order.
func (r *ReadResult) ByGroup() map[string][]*model.Model {
	result := make(map[string][]*model.Model, len(r.Groups))
	for _, g := range r.Groups {
		result[g.Group.Name] = append(result[g.Group.Name], g.Models...)
	}
	return result
}

// Models returns every canonical model in group then acceptance order.
func (r *ReadResult) Models() []*model.Model {
	var result []*model.Model
	for _, g := range r.Groups {
		result = append(result, g.Models...)
	}
	return result
}

// Model returns the canonical model with the given id.
func (r *ReadResult) Model(id string) (*model.Model, bool) {
	for _, g := range r.Groups {
		for _, m := range g.Models {
			if m.ID == id {
				return m, true
			}
		}
	}
	return nil, false
}

// NameFor returns the final display name of any id seen during the read,
// including ids that were deduplicated.
func (r *ReadResult) NameFor(id string) (string, bool) {
	if r.finalizer == nil {
		return "", false
	}
	return r.finalizer.NameFor(id)
}

// PropertyView is the serializable form of a Property.
type PropertyView struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Refs        []string `json:"refs,omitempty" yaml:"refs,omitempty"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Example     any      `json:"example,omitempty" yaml:"example,omitempty"`
}

// ModelView is the serializable form of a Model.
type ModelView struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Type          string         `json:"type" yaml:"type"`
	QualifiedType string         `json:"qualified_type,omitempty" yaml:"qualified_type,omitempty"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	BaseModel     string         `json:"base_model,omitempty" yaml:"base_model,omitempty"`
	Discriminator string         `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
	SubTypes      []string       `json:"sub_types,omitempty" yaml:"sub_types,omitempty"`
	Example       any            `json:"example,omitempty" yaml:"example,omitempty"`
	Properties    []PropertyView `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// GroupView is the serializable form of GroupModels.
type GroupView struct {
	Group       string      `json:"group" yaml:"group"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Models      []ModelView `json:"models" yaml:"models"`
}

// Views converts the result into serializable values.
func (r *ReadResult) Views() []GroupView {
	views := make([]GroupView, 0, len(r.Groups))
	for _, g := range r.Groups {
		gv := GroupView{
			Group:       g.Group.Name,
			Description: g.Group.Description,
			Models:      make([]ModelView, 0, len(g.Models)),
		}
		for _, m := range g.Models {
			gv.Models = append(gv.Models, NewModelView(m))
		}
		views = append(views, gv)
	}
	return views
}

// NewModelView converts m into its serializable form.
func NewModelView(m *model.Model) ModelView {
	mv := ModelView{
		ID:            m.ID,
		Name:          m.Name,
		Type:          m.Type.Signature(),
		QualifiedType: m.QualifiedType,
		Description:   m.Description,
		BaseModel:     m.BaseModel,
		Discriminator: m.Discriminator,
		Example:       m.Example,
	}
	for _, sub := range m.SubTypes {
		mv.SubTypes = append(mv.SubTypes, sub.String())
	}
	for _, p := range m.Properties() {
		mv.Properties = append(mv.Properties, PropertyView{
			Name:        p.Name,
			Type:        p.Ref.String(),
			Refs:        p.Ref.ModelIDs(),
			Required:    p.Required,
			Description: p.Description,
			Example:     p.Example,
		})
	}
	return mv
}
