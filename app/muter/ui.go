package muter

import (
	"fmt"

	"github.com/kbinani/screenshot"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/mangoba/admute/internal/config"
	"github.com/mangoba/admute/internal/engine"
	"github.com/mangoba/admute/internal/logger"
)

// NewPanel creates the muter control panel plus the engine instance behind
// it. The caller owns shutdown: Muter.Stop must run before process exit.
func NewPanel(cfg config.Config) (fyne.CanvasObject, *engine.System, error) {
	// --- Data Binding ---
	logData := binding.NewStringList()
	statusData := binding.NewString()
	statusData.Set("Status: Ready")

	appLogger := logger.New(cfg.Debug, logData)

	sys, err := engine.Build(cfg, appLogger, func(msg string) { statusData.Set(msg) })
	if err != nil {
		return nil, nil, err
	}

	// --- UI Components ---

	// 1. Screen Selector
	numDisplays := screenshot.NumActiveDisplays()
	var displayOptions []string
	for i := 0; i < numDisplays; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		displayOptions = append(displayOptions, fmt.Sprintf("Display %d (%dx%d)", i, bounds.Dx(), bounds.Dy()))
	}
	if len(displayOptions) == 0 {
		displayOptions = []string{"Display 0 (Default)"}
	}

	displaySelect := widget.NewSelect(displayOptions, func(selected string) {
		var id int
		if _, err := fmt.Sscanf(selected, "Display %d", &id); err != nil {
			id = 0
		}
		sys.Searcher.SetDisplayID(id)
		appLogger.Info("Switched to Display %d", id)
	})
	if cfg.Display >= 0 && cfg.Display < len(displayOptions) {
		displaySelect.SetSelected(displayOptions[cfg.Display])
	} else {
		displaySelect.SetSelected(displayOptions[0])
	}

	// 2. Status + Log View
	statusLabel := widget.NewLabelWithData(statusData)
	logList := widget.NewListWithData(logData,
		func() fyne.CanvasObject {
			lbl := widget.NewLabel("")
			lbl.Truncation = fyne.TextTruncateEllipsis
			return lbl
		},
		func(item binding.DataItem, obj fyne.CanvasObject) {
			obj.(*widget.Label).Bind(item.(binding.String))
		})

	// 3. Controls
	runBtn := widget.NewButton("Run", func() {
		sys.Muter.Start()
		sys.Muter.Resume()
	})
	runBtn.Importance = widget.HighImportance

	pauseBtn := widget.NewButton("Pause", func() {
		sys.Muter.Pause()
	})

	stopBtn := widget.NewButton("Stop", func() {
		sys.Muter.Stop()
	})

	diagBtn := widget.NewButton("Diagnose", func() {
		// Runs off the UI thread; the report is a few screen scans.
		go sys.Diagnose(appLogger.Info)
	})

	// --- Layout ---
	top := container.NewVBox(
		widget.NewLabel("Screen:"),
		displaySelect,
		container.NewGridWithColumns(4, runBtn, pauseBtn, stopBtn, diagBtn),
		statusLabel,
		widget.NewSeparator(),
	)

	return container.NewBorder(top, nil, nil, nil, logList), sys, nil
}
