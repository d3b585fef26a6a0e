package constants

// ExportColumns is the fixed column order of exported menu rows.
var ExportColumns = []string{
	"Позиция",
	"Описание",
	"Вес",
	"Цена",
	"Код ИКПУ",
	"Картинка",
}
