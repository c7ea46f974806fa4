package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PlanTypeFitness    = "FITNESS"
	PlanTypeNutrition  = "NUTRITION"
	PlanTypeMental     = "MENTAL_HEALTH"
	PlanTypePreventive = "PREVENTIVE"
)

// HealthPlan stores an AI-generated plan. Content is the upstream JSON as
// received; ParsePlanContent decodes it into a typed variant at the boundary.
type HealthPlan struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	PlanType  string         `json:"plan_type" gorm:"type:varchar(32);not null"`
	Content   datatypes.JSON `json:"content"`
	Generated bool           `json:"generated" gorm:"default:false"`
	IsDeleted bool           `gorm:"default:false"`
}

// FitnessPlan is the structured shape expected for FITNESS plans
type FitnessPlan struct {
	Goal     string   `json:"goal"`
	Weeks    int      `json:"weeks"`
	Workouts []string `json:"workouts"`
	Notes    string   `json:"notes,omitempty"`
}

// NutritionPlan is the structured shape expected for NUTRITION plans
type NutritionPlan struct {
	DailyCalories int      `json:"daily_calories"`
	Meals         []string `json:"meals"`
	Restrictions  []string `json:"restrictions,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// MentalHealthPlan is the structured shape expected for MENTAL_HEALTH plans
type MentalHealthPlan struct {
	Focus     string   `json:"focus"`
	Practices []string `json:"practices"`
	CheckIns  []string `json:"check_ins,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// PreventivePlan is the structured shape expected for PREVENTIVE plans
type PreventivePlan struct {
	Screenings []string `json:"screenings"`
	Frequency  string   `json:"frequency"`
	Notes      string   `json:"notes,omitempty"`
}

// RawTextPlan wraps upstream output that did not parse as JSON
type RawTextPlan struct {
	Content string `json:"content"`
}

// PlanContent is the decoded form of a HealthPlan content column:
// exactly one variant is non-nil.
type PlanContent struct {
	Fitness    *FitnessPlan
	Nutrition  *NutritionPlan
	Mental     *MentalHealthPlan
	Preventive *PreventivePlan
	Raw        *RawTextPlan
}

// WrapRawPlan builds the fallback content column for a non-JSON upstream
// response.
func WrapRawPlan(text string) datatypes.JSON {
	b, _ := json.Marshal(RawTextPlan{Content: text})
	return datatypes.JSON(b)
}

// ParsePlanContent decodes a plan content column into its typed variant.
// Content that is not a JSON object falls back to RawTextPlan.
func ParsePlanContent(planType string, content []byte) PlanContent {
	if !json.Valid(content) {
		return PlanContent{Raw: &RawTextPlan{Content: string(content)}}
	}

	// RawTextPlan columns are stored as {"content": "..."}; detect them first
	// so a wrapped fallback never masquerades as a structured plan.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(content, &probe); err != nil {
		return PlanContent{Raw: &RawTextPlan{Content: string(content)}}
	}
	if len(probe) == 1 {
		if _, ok := probe["content"]; ok {
			var raw RawTextPlan
			if err := json.Unmarshal(content, &raw); err == nil {
				return PlanContent{Raw: &raw}
			}
		}
	}

	switch planType {
	case PlanTypeFitness:
		var p FitnessPlan
		if err := json.Unmarshal(content, &p); err == nil {
			return PlanContent{Fitness: &p}
		}
	case PlanTypeNutrition:
		var p NutritionPlan
		if err := json.Unmarshal(content, &p); err == nil {
			return PlanContent{Nutrition: &p}
		}
	case PlanTypeMental:
		var p MentalHealthPlan
		if err := json.Unmarshal(content, &p); err == nil {
			return PlanContent{Mental: &p}
		}
	case PlanTypePreventive:
		var p PreventivePlan
		if err := json.Unmarshal(content, &p); err == nil {
			return PlanContent{Preventive: &p}
		}
	}
	return PlanContent{Raw: &RawTextPlan{Content: string(content)}}
}
