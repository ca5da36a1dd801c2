package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/aqua-access/internal/model"
)

func TestEveryNoticeHasNameAndMessage(t *testing.T) {
	for n := InvalidUsername; n <= InvalidGlassHint; n++ {
		assert.NotContains(t, n.String(), "Notice(", "notice %d has no name", int(n))
		assert.NotEmpty(t, n.Message(), n.String())
	}
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, SeverityBad, WrongPassword.Severity())
	assert.Equal(t, SeverityNeutral, PreviouslyRejectedCredentials.Severity())
	assert.Equal(t, SeverityNeutral, PreviouslyNoSuchUser.Severity())
	assert.Equal(t, SeverityGood, AccountCreated.Severity())
}

func TestNotificationText(t *testing.T) {
	assert.Equal(t, "Wrong password", Of(WrongPassword).Text())

	weak := Notification{
		Notice:   InvalidPassword,
		Weakness: model.PasswordWith("abc").Power.Reasons(),
	}
	assert.Equal(t, "There can be no user with this password (too_short, only_small_letters, no_digits)", weak.Text())

	weight, err := model.NewWeight(70)
	assert.NoError(t, err)
	balance, err := model.SuitableWaterBalance(weight)
	assert.NoError(t, err)
	hint := Notification{Notice: ValidWeightWithoutTargetHint, SuggestedTarget: &balance}
	assert.Equal(t, "The daily target will be derived from your weight: 2000 ml", hint.Text())
}
