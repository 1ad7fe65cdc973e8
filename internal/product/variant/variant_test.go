package variant

import (
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("sizes outer colors inner", func(t *testing.T) {
		got, err := Generate(TagList{"M", "L"}, TagList{"Red", "Blue", "Green"}, 5)
		require.NoError(t, err)
		require.Len(t, got, 6)

		want := [][2]string{
			{"M", "Red"}, {"M", "Blue"}, {"M", "Green"},
			{"L", "Red"}, {"L", "Blue"}, {"L", "Green"},
		}
		for i, w := range want {
			assert.Equal(t, w[0], got[i].Size)
			assert.Equal(t, w[1], got[i].Color)
			assert.Equal(t, 5, got[i].Stock)
		}
	})

	t.Run("empty tags fall back to defaults", func(t *testing.T) {
		got, err := Generate(nil, nil, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, DefaultSize, got[0].Size)
		assert.Equal(t, DefaultColor, got[0].Color)
	})

	t.Run("only colors", func(t *testing.T) {
		got, err := Generate(nil, TagList{"Red", "Blue"}, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, DefaultSize, got[1].Size)
		assert.Equal(t, "Blue", got[1].Color)
	})

	t.Run("negative stock", func(t *testing.T) {
		_, err := Generate(TagList{"M"}, nil, -1)
		assert.ErrorIs(t, err, ErrNegativeStock)
	})
}

func TestTagList(t *testing.T) {
	var tags TagList
	tags = tags.Add(" M, L ,M,, XL")
	assert.Equal(t, TagList{"M", "L", "XL"}, tags)

	tags = tags.Add("L")
	assert.Len(t, tags, 3)

	tags = tags.Remove("L")
	assert.Equal(t, TagList{"M", "XL"}, tags)
	assert.False(t, tags.Contains("L"))
	assert.True(t, tags.Contains("XL"))
}

func TestReplace(t *testing.T) {
	existing := []model.ProductVariant{{Size: "M", Color: "Red", Stock: 3}}
	generated := []model.ProductVariant{{Size: "L", Color: "Red"}, {Size: "L", Color: "Blue"}}

	got, err := Replace(existing, generated, false)
	assert.ErrorIs(t, err, ErrReplaceNotConfirmed)
	assert.Equal(t, existing, got)

	got, err = Replace(existing, generated, true)
	require.NoError(t, err)
	assert.Equal(t, generated, got)

	got, err = Replace(nil, generated, false)
	require.NoError(t, err)
	assert.Equal(t, generated, got)
}

func TestAssignSKUs(t *testing.T) {
	keep := "CUSTOM-1"
	variants := []model.ProductVariant{
		{Size: "M", Color: "Red"},
		{Size: "Free Size", Color: "Navy Blue", SKU: &keep},
	}
	AssignSKUs("Cotton Kurta", variants)

	require.NotNil(t, variants[0].SKU)
	assert.Equal(t, "COTTON-KURTA-M-RED", *variants[0].SKU)
	assert.Equal(t, "CUSTOM-1", *variants[1].SKU)
}

func TestTags(t *testing.T) {
	sizes, colors := Tags([]model.ProductVariant{
		{Size: "M", Color: "Red"},
		{Size: "M", Color: "Blue"},
		{Size: "L", Color: "Red"},
	})
	assert.Equal(t, TagList{"M", "L"}, sizes)
	assert.Equal(t, TagList{"Red", "Blue"}, colors)
}
