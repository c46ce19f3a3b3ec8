package main

type mode int

const (
	modeView mode = iota
	modeCommand
)

type uiState struct {
	mode         mode
	command      CommandInput
	noticeMsg    string
	noticeType   string
	noticeSeq    int
	searchQuery  string
	visibleStart int
	visibleEnd   int
	lastDir      string
}
