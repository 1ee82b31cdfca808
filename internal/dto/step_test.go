package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/cardio-onc/qtwizard/internal/content"
	"github.com/cardio-onc/qtwizard/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRegistry(t *testing.T) {
	steps := dto.FromRegistry(content.MustQTcF().Registry)
	require.Len(t, steps, 9)

	start := steps[0]
	require.NotNil(t, start.DefaultNext)
	assert.Equal(t, 1, *start.DefaultNext)
	assert.Empty(t, start.Options)

	qrs := steps[3]
	assert.Nil(t, qrs.DefaultNext, "absent next is omitted")
	assert.False(t, qrs.Terminal)
	require.Len(t, qrs.Options, 2)
	assert.Equal(t, ">120 msec", qrs.Options[1].Prefix)
	require.NotNil(t, qrs.Options[1].Destination)
	assert.Equal(t, 4, *qrs.Options[1].Destination)

	link := steps[4].Points[0].Options[0]
	assert.Equal(t, "link", link.Kind)
	assert.Contains(t, link.Href, "mayoclinic.org")

	assert.True(t, steps[8].Terminal)
	assert.Equal(t, "text", steps[8].Points[0].Type)
}

func TestStep_JSON(t *testing.T) {
	s := dto.FromStep(content.MustQTcF().Registry.MustGet(7))
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"index": 7,
		"title": "Step 7: QTcF remains elevated",
		"terminal": true,
		"points": [{"type": "text", "text": "Contact Cardio-oncology using SmartWeb for review."}],
		"options": []
	}`, string(b))
}
