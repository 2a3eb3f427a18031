package tools

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/kbinani/screenshot"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/mangoba/admute/internal/constants"
)

// NewToolsPanel creates the template capture panel. Ad templates and the
// mute icon pair are produced here: capture a display, drag a rectangle
// around the ad banner or the volume icon, save.
func NewToolsPanel(win fyne.Window, assetsDir string) fyne.CanvasObject {
	selectedDisplay := 0

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
		if _, err := fmt.Sscanf(selected, "Display %d", &id); err == nil {
			selectedDisplay = id
		}
	})
	displaySelect.SetSelected(displayOptions[0])

	// 2. Instructions
	infoLabel := widget.NewLabel("1. Pick a screen\n2. Capture & Crop while the ad (or icon) is visible\n3. Drag a box around it\n4. Save the template")
	infoLabel.Alignment = fyne.TextAlignCenter

	// 3. Actions
	cropBtn := widget.NewButton("Capture & Crop", func() {
		bounds := screenshot.GetDisplayBounds(selectedDisplay)
		img, err := screenshot.CaptureRect(bounds)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		showCropperWindow(img, assetsDir)
	})
	cropBtn.Importance = widget.HighImportance

	openDirBtn := widget.NewButton("Open Assets Folder", func() {
		openDir(assetsDir)
	})

	return container.NewVBox(
		widget.NewLabel("Screen:"),
		displaySelect,
		widget.NewSeparator(),
		infoLabel,
		cropBtn,
		widget.NewSeparator(),
		openDirBtn,
	)
}

func openDir(path string) {
	absPath, _ := filepath.Abs(path)
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("explorer", absPath)
	default:
		cmd = exec.Command("xdg-open", absPath)
	}
	cmd.Run()
}

func showCropperWindow(fullImg image.Image, assetsDir string) {
	w := fyne.CurrentApp().NewWindow("Crop Template")
	w.Resize(fyne.NewSize(800, 600))

	lbl := widget.NewLabel("Drag a box around the target...")
	lbl.Alignment = fyne.TextAlignCenter

	saveBtn := widget.NewButton("Save Selection", nil)
	saveBtn.Disable()

	var currentSelection image.Rectangle

	cropper := NewCropperWidget(fullImg, func(rect image.Rectangle) {
		currentSelection = rect
		lbl.SetText(fmt.Sprintf("Selected: %v", rect))
		saveBtn.Enable()
	})

	saveBtn.OnTapped = func() {
		if currentSelection.Empty() {
			return
		}
		subImg, ok := fullImg.(interface {
			SubImage(r image.Rectangle) image.Image
		})
		if !ok {
			dialog.ShowError(fmt.Errorf("image type does not support cropping"), w)
			return
		}
		showSaveForm(w, subImg.SubImage(currentSelection), assetsDir)
	}

	w.SetContent(container.NewBorder(nil, container.NewVBox(lbl, saveBtn), nil, nil, cropper))
	w.Show()
}

func showSaveForm(win fyne.Window, img image.Image, assetsDir string) {
	preview := canvas.NewImageFromImage(img)
	preview.FillMode = canvas.ImageFillContain
	preview.SetMinSize(fyne.NewSize(100, 100))

	adsDir := filepath.Join(assetsDir, constants.AdsSubdir)
	volumeDir := filepath.Join(assetsDir, constants.VolumeSubdir)

	// Template kind decides directory and suggested filename. Icon names are
	// fixed; the detector looks them up by exact name.
	kindOptions := []string{"Ad template", "Muted icon", "Unmuted icon"}
	kindSelect := widget.NewSelect(kindOptions, nil)
	nameEntry := widget.NewEntry()

	targetDir := func() string {
		if kindSelect.Selected == "Ad template" {
			return adsDir
		}
		return volumeDir
	}

	kindSelect.OnChanged = func(kind string) {
		switch kind {
		case "Muted icon":
			nameEntry.SetText(constants.MutedIconFile)
		case "Unmuted icon":
			nameEntry.SetText(constants.UnmutedIconFile)
		default:
			nameEntry.SetText(nextAdName(adsDir))
		}
	}
	kindSelect.SetSelected(kindOptions[0])

	content := container.NewVBox(
		widget.NewLabel("Save this template?"),
		container.NewCenter(preview),
		widget.NewLabel("Kind:"),
		kindSelect,
		widget.NewLabel("Filename:"),
		nameEntry,
	)

	dialog.ShowCustomConfirm("Save Template", "Save", "Cancel", content, func(confirm bool) {
		if !confirm {
			return
		}
		if nameEntry.Text == "" {
			dialog.ShowError(fmt.Errorf("filename must not be empty"), win)
			return
		}

		dir := targetDir()
		if err := os.MkdirAll(dir, 0755); err != nil {
			dialog.ShowError(err, win)
			return
		}

		f, err := os.Create(filepath.Join(dir, nameEntry.Text))
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		defer f.Close()

		if err := png.Encode(f, img); err != nil {
			dialog.ShowError(err, win)
			return
		}
		dialog.ShowInformation("Saved", fmt.Sprintf("Saved %s", filepath.Join(dir, nameEntry.Text)), win)
	}, win)
}

// nextAdName suggests the first unused ad_NN.png in dir.
func nextAdName(dir string) string {
	for i := 1; i < 100; i++ {
		name := fmt.Sprintf("ad_%02d.png", i)
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			return name
		}
	}
	return "ad.png"
}
