package service

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaxHorizon/AutoHack/internal/models"
)

func TestRenderChart(t *testing.T) {
	renderer := NewPieChartRenderer(zerolog.Nop())

	data, err := renderer.Render(models.ScoreSet{"Clarity": 8, "Structure": 7})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, chartSize, img.Bounds().Dx())
}

func TestRenderChartEmptyScores(t *testing.T) {
	renderer := NewPieChartRenderer(zerolog.Nop())

	data, err := renderer.Render(models.ScoreSet{})
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestRenderChartAllZeroScores(t *testing.T) {
	renderer := NewPieChartRenderer(zerolog.Nop())

	// Нулевая сумма не делится на доли; деградируем до пустой картинки
	data, err := renderer.Render(models.ScoreSet{"Clarity": 0, "Grammar": 0})
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}
