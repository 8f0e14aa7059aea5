package handler

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smapp/internal/errors"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "date only", value: "2020-03-01", want: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", value: "2020-03-01T10:00:00+02:00", want: time.Date(2020, 3, 1, 8, 0, 0, 0, time.UTC)},
		{name: "padded", value: " 2021-12-31 ", want: time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", value: "yesterday", wantErr: true},
		{name: "us format", value: "03/01/2020", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate("from", tt.value)
			if tt.wantErr {
				var verr *errors.ValidationError
				require.True(t, stderrors.As(err, &verr))
				assert.Equal(t, "from", verr.Fields[0].Param)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestExperienceRequest_ToModel(t *testing.T) {
	exp, err := ExperienceRequest{Title: "Dev", Company: "Acme", From: "2019-01-01"}.toModel()
	require.NoError(t, err)
	assert.Nil(t, exp.To)
	assert.Equal(t, 2019, exp.From.Year())

	_, err = EducationRequest{School: "MIT", From: "2019-01-01", To: "soon"}.toModel()
	var verr *errors.ValidationError
	require.True(t, stderrors.As(err, &verr))
	assert.Equal(t, "to", verr.Fields[0].Param)
}
