package transform

import (
	"errors"
	"testing"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseWorksheet() *domain.Worksheet {
	return &domain.Worksheet{
		CustomerName:   "홍길동",
		CareGradeID:    "grade3",
		DefaultDayType: domain.DayWeekday,
		DefaultBurden:  "normal",
		Lines: []domain.LineItem{
			{ServiceID: "visit-1", Quantity: 4},
			{ServiceID: "daycare-1", Quantity: 12, DayType: domain.DayWeekend},
			{ServiceID: "equipment-2", Quantity: 1, BurdenTierID: "reduced-60"},
		},
	}
}

func TestApplyTransforms_LeavesBaseUntouched(t *testing.T) {
	base := baseWorksheet()

	out, err := ApplyTransforms(base, []WorksheetTransform{
		&SetDayType{DayType: domain.DayHoliday},
		&SetBurdenTier{TierID: "medical-aid"},
	})
	require.NoError(t, err)

	for _, l := range out.Lines {
		assert.Equal(t, domain.DayHoliday, l.DayType)
		assert.Equal(t, "medical-aid", l.BurdenTierID)
	}
	assert.Equal(t, domain.DayWeekend, base.Lines[1].DayType, "base must not change")
	assert.Equal(t, "reduced-60", base.Lines[2].BurdenTierID, "base must not change")
}

func TestApplyTransforms_Errors(t *testing.T) {
	_, err := ApplyTransforms(nil, nil)
	assert.Error(t, err)

	_, err = ApplyTransforms(baseWorksheet(), []WorksheetTransform{nil})
	assert.ErrorContains(t, err, "index 0 is nil")

	_, err = ApplyTransforms(baseWorksheet(), []WorksheetTransform{&SetDayType{DayType: "someday"}})
	require.Error(t, err)
	var te *TransformError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, "set_day", te.TransformName)
}

func TestApplyTransforms_NoTransformsReturnsCopy(t *testing.T) {
	base := baseWorksheet()
	out, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	assert.Equal(t, *base, *out)

	out.Lines[0].Quantity = 99
	assert.Equal(t, 4, base.Lines[0].Quantity)
}

func TestSetCareGrade_ClearsLineOverrides(t *testing.T) {
	base := baseWorksheet()
	base.Lines[0].CareGradeID = "grade1"

	out, err := ApplyTransforms(base, []WorksheetTransform{&SetCareGrade{GradeID: "grade5"}})
	require.NoError(t, err)
	assert.Equal(t, "grade5", out.CareGradeID)
	assert.Empty(t, out.Lines[0].CareGradeID)
}

func TestQuantityTransforms(t *testing.T) {
	out, err := ApplyTransforms(baseWorksheet(), []WorksheetTransform{
		&SetQuantity{ServiceID: "visit-1", Quantity: 8},
		&AddService{ServiceID: "visit-5", Quantity: 2},
		&RemoveService{ServiceID: "equipment-2"},
	})
	require.NoError(t, err)
	require.Len(t, out.Lines, 3)
	assert.Equal(t, 8, out.Lines[0].Quantity)
	assert.Equal(t, "visit-5", out.Lines[2].ServiceID)
	assert.False(t, out.HasService("equipment-2"))

	_, err = ApplyTransforms(baseWorksheet(), []WorksheetTransform{&SetQuantity{ServiceID: "visit-1", Quantity: 0}})
	var qe *domain.InvalidQuantityError
	assert.True(t, errors.As(err, &qe))

	_, err = ApplyTransforms(baseWorksheet(), []WorksheetTransform{&RemoveService{ServiceID: "visit-9"}})
	assert.Error(t, err)
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec    string
		want    string
		wantErr bool
	}{
		{spec: "set_day:day=weekend", want: "set_day"},
		{spec: "set_tier:tier=reduced-40", want: "set_tier"},
		{spec: "set_grade:grade=grade1", want: "set_grade"},
		{spec: "set_quantity:service=visit-1,quantity=8", want: "set_quantity"},
		{spec: "add_service:service=visit-5", want: "add_service"},
		{spec: "remove_service:service=visit-1", want: "remove_service"},
		{spec: "set_quantity:service=visit-1,quantity=many", wantErr: true},
		{spec: "set_day:", wantErr: true},
		{spec: "set_day", wantErr: true},
		{spec: "unknown:x=1", wantErr: true},
		{spec: "set_day:weekend", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tr.Name())
			assert.NotEmpty(t, tr.Description())
		})
	}

	assert.Equal(t, []string{"add_service", "remove_service", "set_day", "set_grade", "set_quantity", "set_tier"}, registry.List())
}

func TestAddService_DayAndTier(t *testing.T) {
	tr, err := NewTransformRegistry().ParseTransformSpec("add_service:service=shortstay-1,quantity=2,day=holiday,tier=reduced-40")
	require.NoError(t, err)

	out, err := ApplyTransforms(baseWorksheet(), []WorksheetTransform{tr})
	require.NoError(t, err)

	require.Len(t, out.Lines, 4)
	added := out.Lines[3]
	assert.Equal(t, "shortstay-1", added.ServiceID)
	assert.Equal(t, 2, added.Quantity)
	assert.Equal(t, domain.DayHoliday, added.DayType)
	assert.Equal(t, "reduced-40", added.BurdenTierID)
}
