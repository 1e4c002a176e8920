package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/rs/zerolog"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/HaxHorizon/AutoHack/internal/models"
)

const chartSize = 512

type ChartRenderer interface {
	Render(scores models.ScoreSet) ([]byte, error)
}

type pieChartRenderer struct {
	logger zerolog.Logger
}

func NewPieChartRenderer(logger zerolog.Logger) ChartRenderer {
	return &pieChartRenderer{logger: logger}
}

// Render строит круговую диаграмму: по сектору на параметр, размер
// пропорционален оценке, подпись — имя параметра и доля в процентах.
// Пустой (или нулевой) набор оценок даёт валидный пустой PNG, а не ошибку.
func (r *pieChartRenderer) Render(scores models.ScoreSet) ([]byte, error) {
	var total float64
	for _, category := range models.Categories {
		if value, ok := scores[category]; ok {
			total += float64(value)
		}
	}

	if total == 0 {
		return blankChart()
	}

	values := make([]chart.Value, 0, len(scores))
	for _, category := range models.Categories {
		value, ok := scores[category]
		if !ok {
			continue
		}
		share := 100 * float64(value) / total
		values = append(values, chart.Value{
			Value: float64(value),
			Label: fmt.Sprintf("%s %.1f%%", category, share),
		})
	}

	pie := chart.PieChart{
		Title:  "Presentation Evaluation Scores",
		Width:  chartSize,
		Height: chartSize,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	r.logger.Debug().Int("slices", len(values)).Msg("Rendered score chart")

	return buf.Bytes(), nil
}

func blankChart() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, chartSize, chartSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode blank chart: %w", err)
	}
	return buf.Bytes(), nil
}
