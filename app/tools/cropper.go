package tools

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// CropperWidget displays a captured screen and lets the user drag-select the
// rectangle to save as a template.
type CropperWidget struct {
	widget.BaseWidget

	originalImg image.Image
	startPos    fyne.Position
	currentPos  fyne.Position
	isDragging  bool

	raster    *canvas.Image
	selection *canvas.Rectangle

	OnSelected func(rect image.Rectangle)
}

func NewCropperWidget(img image.Image, onSelected func(image.Rectangle)) *CropperWidget {
	c := &CropperWidget{
		originalImg: img,
		OnSelected:  onSelected,
	}
	c.ExtendBaseWidget(c)

	c.raster = canvas.NewImageFromImage(img)
	c.raster.ScaleMode = canvas.ImageScalePixels // No interpolation; templates must be pixel-exact
	c.raster.FillMode = canvas.ImageFillContain

	c.selection = canvas.NewRectangle(color.RGBA{R: 255, A: 60})
	c.selection.StrokeColor = color.RGBA{R: 255, A: 255}
	c.selection.StrokeWidth = 2
	c.selection.Hide()

	return c
}

func (c *CropperWidget) CreateRenderer() fyne.WidgetRenderer {
	return &cropperRenderer{
		cropper: c,
		objects: []fyne.CanvasObject{c.raster, c.selection},
	}
}

func (c *CropperWidget) Dragged(e *fyne.DragEvent) {
	if !c.isDragging {
		c.isDragging = true
		c.startPos = e.Position.Subtract(e.Dragged)
		c.selection.Show()
	}
	c.currentPos = e.Position
	c.Refresh()
}

func (c *CropperWidget) DragEnd() {
	c.isDragging = false
	c.Refresh()
	c.reportSelection()
}

func (c *CropperWidget) Tapped(e *fyne.PointEvent) {
	// Click resets the selection
	c.startPos = e.Position
	c.currentPos = e.Position
	c.selection.Hide()
	c.Refresh()
}

func (c *CropperWidget) Cursor() desktop.Cursor {
	return desktop.CrosshairCursor
}

// drawnImageRect returns where the contained image actually lands inside the
// widget (letterboxed on one axis).
func (c *CropperWidget) drawnImageRect() (pos fyne.Position, size fyne.Size) {
	wBound := c.Size().Width
	hBound := c.Size().Height
	if wBound == 0 || hBound == 0 {
		return fyne.Position{}, fyne.Size{}
	}

	imgW := float32(c.originalImg.Bounds().Dx())
	imgH := float32(c.originalImg.Bounds().Dy())
	aspect := imgW / imgH

	if wBound/hBound > aspect {
		// View wider than image: fit height
		h := hBound
		w := h * aspect
		return fyne.NewPos((wBound-w)/2, 0), fyne.NewSize(w, h)
	}
	w := wBound
	h := w / aspect
	return fyne.NewPos(0, (hBound-h)/2), fyne.NewSize(w, h)
}

// reportSelection maps the dragged box from widget space to image pixels and
// fires OnSelected.
func (c *CropperWidget) reportSelection() {
	if c.OnSelected == nil {
		return
	}

	imgPos, imgSize := c.drawnImageRect()
	if imgSize.Width == 0 || imgSize.Height == 0 {
		return
	}

	selMinX := min(c.startPos.X, c.currentPos.X)
	selMinY := min(c.startPos.Y, c.currentPos.Y)
	selMaxX := max(c.startPos.X, c.currentPos.X)
	selMaxY := max(c.startPos.Y, c.currentPos.Y)

	// Clamp selection to the drawn image
	interX := max(imgPos.X, selMinX)
	interY := max(imgPos.Y, selMinY)
	interRight := min(imgPos.X+imgSize.Width, selMaxX)
	interBottom := min(imgPos.Y+imgSize.Height, selMaxY)
	if interRight-interX <= 0 || interBottom-interY <= 0 {
		return
	}

	scaleX := float32(c.originalImg.Bounds().Dx()) / imgSize.Width
	scaleY := float32(c.originalImg.Bounds().Dy()) / imgSize.Height

	relX := interX - imgPos.X
	relY := interY - imgPos.Y

	finalRect := image.Rect(
		int(relX*scaleX),
		int(relY*scaleY),
		int((relX+interRight-interX)*scaleX),
		int((relY+interBottom-interY)*scaleY),
	)
	// Float math can overshoot by a pixel
	finalRect = finalRect.Intersect(c.originalImg.Bounds())

	c.OnSelected(finalRect)
}

// --- Renderer ---

type cropperRenderer struct {
	cropper *CropperWidget
	objects []fyne.CanvasObject
}

func (r *cropperRenderer) Layout(s fyne.Size) {
	r.objects[0].Resize(s)
	r.objects[0].Move(fyne.NewPos(0, 0))
	r.layoutSelection()
}

func (r *cropperRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *cropperRenderer) Refresh() {
	r.layoutSelection()
	canvas.Refresh(r.cropper)
}

func (r *cropperRenderer) layoutSelection() {
	c := r.cropper
	minX := min(c.startPos.X, c.currentPos.X)
	minY := min(c.startPos.Y, c.currentPos.Y)
	maxX := max(c.startPos.X, c.currentPos.X)
	maxY := max(c.startPos.Y, c.currentPos.Y)

	r.objects[1].Move(fyne.NewPos(minX, minY))
	r.objects[1].Resize(fyne.NewSize(maxX-minX, maxY-minY))
}

func (r *cropperRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *cropperRenderer) Destroy() {}
