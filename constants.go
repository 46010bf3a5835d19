package main

import "time"

type Screen int

const (
	ScreenAddStory Screen = iota
	ScreenStoryCanvas
)

const (
	// pinchStep is the scale factor applied per wheel notch or +/- press.
	pinchStep = 1.1
	// pinchIdle ends a wheel pinch once no notch arrives for this long.
	pinchIdle = 400 * time.Millisecond
	frameRate = 60
	// nudgeStep is how far, in canvas units, an arrow key drags a label.
	nudgeStep = 10.0
	// composerRows is the terminal height taken by the text tool; it plays
	// the role of the keyboard.
	composerRows = 9
)

const videoPlaceholderColor = "#222222"
