package mocks

//go:generate mockgen -destination=./mock_canvas.go -package=mocks github.com/rxtech-lab/argo-chart/internal/canvas TextMeasurer
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-chart/internal/datasource DataSource
