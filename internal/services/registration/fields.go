package registration

import (
	"github.com/mcoot/aqua-access/internal/model"
	"github.com/mcoot/aqua-access/internal/views"
)

// Fields are the raw texts of the registration form. Amount fields left
// blank are absent.
type Fields struct {
	Username string
	Password string
	Weight   string
	Target   string
	Glass    string
}

// amounts holds the parsed optional amounts; nil means absent
type amounts struct {
	weight *model.AnyWeight
	target *model.AnyWaterBalance
	glass  *model.AnyGlass
}

func (f Fields) amounts() amounts {
	var a amounts
	if kg, ok := model.ParseOptionalAmount(f.Weight); ok {
		weight := model.WeightWith(kg)
		a.weight = &weight
	}
	if ml, ok := model.ParseOptionalAmount(f.Target); ok {
		target := model.WaterBalanceWith(ml)
		a.target = &target
	}
	if ml, ok := model.ParseOptionalAmount(f.Glass); ok {
		glass := model.GlassWith(ml)
		a.glass = &glass
	}
	return a
}

// weightKind returns the kind of a present weight
func (a amounts) weightKind() (model.WeightKind, bool) {
	if a.weight == nil {
		return 0, false
	}
	return a.weight.Kind, true
}

// suggestedTarget derives the default balance from a weight for target
func (a amounts) suggestedTarget() *model.WaterBalance {
	if a.weight == nil {
		return nil
	}
	weight, ok := a.weight.Weight()
	if !ok {
		return nil
	}
	balance, err := model.SuitableWaterBalance(weight)
	if err != nil {
		return nil
	}
	return &balance
}

// PreparePassword handles an edit of the password field
func (s *Service) PreparePassword(form views.RegistrationForm, fields Fields) {
	password := model.PasswordWith(fields.Password)

	if password.IsWeak() {
		form.Password.RedrawNeutral()
		form.Notification.Show(views.Notification{
			Notice:   views.InvalidPassword,
			Weakness: password.Power.Reasons(),
		})
		return
	}

	form.Password.RedrawOk()
	form.Notification.Hide()
}

// PrepareWeight handles an edit of the weight field. With a target the
// weight only has to be valid; without one it has to be usable for
// deriving the target.
func (s *Service) PrepareWeight(form views.RegistrationForm, fields Fields) {
	a := fields.amounts()
	kind, hasWeight := a.weightKind()

	if a.target != nil {
		if !hasWeight || kind != model.WeightInvalid {
			form.Weight.RedrawOk()
			form.Notification.Show(views.Of(views.ValidWeightWithTargetHint))
		} else {
			form.Weight.RedrawNeutral()
			form.Notification.Show(views.Of(views.InvalidWeightWithTargetHint))
		}
		return
	}

	if hasWeight && kind == model.WeightForTarget {
		form.Weight.RedrawOk()
		form.Target.RedrawOk()
		form.Notification.Show(views.Notification{
			Notice:          views.ValidWeightWithoutTargetHint,
			SuggestedTarget: a.suggestedTarget(),
		})
		return
	}

	form.Weight.RedrawNeutral()
	form.Target.RedrawNeutral()
	form.Notification.Show(views.Of(views.InvalidWeightWithoutTargetHint))
}

// PrepareTarget handles an edit of the target water balance field
func (s *Service) PrepareTarget(form views.RegistrationForm, fields Fields) {
	a := fields.amounts()
	kind, hasWeight := a.weightKind()

	if a.target != nil && a.target.IsValid() {
		form.Target.RedrawOk()

		switch {
		case hasWeight && kind == model.WeightForTarget:
			form.Weight.RedrawOk()
			form.Notification.Show(views.Notification{
				Notice:          views.ValidTargetWithWeightHint,
				SuggestedTarget: a.suggestedTarget(),
			})
		case !hasWeight || kind == model.WeightPlain:
			form.Weight.RedrawOk()
			form.Notification.Show(views.Of(views.ValidTargetWithoutWeightHint))
		default:
			form.Weight.RedrawNeutral()
			form.Notification.Show(views.Of(views.ValidTargetWithoutWeightHint))
		}
		return
	}

	if hasWeight && kind == model.WeightForTarget {
		form.Target.RedrawOk()
		form.Notification.Show(views.Notification{
			Notice:          views.ValidTargetWithWeightHint,
			SuggestedTarget: a.suggestedTarget(),
		})
		return
	}

	form.Target.RedrawNeutral()
	form.Weight.RedrawNeutral()
	form.Notification.Show(views.Of(views.InvalidTargetWithoutWeightHint))
}

// PrepareGlass handles an edit of the glass capacity field. Glass does not
// depend on the other amounts.
func (s *Service) PrepareGlass(form views.RegistrationForm, fields Fields) {
	a := fields.amounts()

	switch {
	case a.glass == nil:
		form.Glass.RedrawOk()
		form.Notification.Hide()
	case a.glass.IsValid():
		form.Glass.RedrawOk()
		form.Notification.Show(views.Of(views.ValidGlassHint))
	default:
		form.Glass.RedrawNeutral()
		form.Notification.Show(views.Of(views.InvalidGlassHint))
	}
}
