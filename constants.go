package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeFileInput
	ModeColorInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpImport
)

type ConfirmAction int

const (
	ConfirmNewCanvas ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

const (
	toolbarRows = 2 // tool buttons, then palette and actions
	statusRows  = 1
)

// imageExtensions are listed by the import prompt.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
