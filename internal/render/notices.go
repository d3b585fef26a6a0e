package render

import (
	"fmt"

	"github.com/tezkor/menu-tracker/constants"
)

// Workflow notices shown to the operator on transitions and recoverable errors.
const (
	NoticeWelcome       = "Привет! Выбери сценарий 👇"
	NoticeHome          = "Ок, вернул в главное меню 👇"
	NoticeAskSheet      = "Пришли ссылку на таблицу:"
	NoticeSheetBound    = "✅ Таблица привязана.\nТеперь добавляй блюда."
	NoticeBulkSheet     = "✅ Таблица привязана.\n\nТеперь отправь ВСЁ меню подряд:\nФото → Название → Описание → Цена → Вес → ИКПУ\n\n• каждое блюдо начинается с фото\n• ИКПУ может отсутствовать\n\nКогда закончишь — нажми «Меню загружено»."
	NoticeCollectDish   = "Перешли данные и фото блюда.\nКогда закончишь — нажми «Готово»."
	NoticeDishCanceled  = "❌ Блюдо отменено"
	NoticeEditCanceled  = "Ок, отменил правки. Нажми «Готово», чтобы перейти дальше."
	NoticeNothingCancel = "Нечего отменять."
	NoticeNoSheet       = "Нет привязанной таблицы."
	NoticeNeedSheet     = "Сначала выбери режим и укажи ссылку на таблицу."
	NoticeNoPositions   = "Не нашёл ни одной позиции.\nПроверь, что каждое блюдо начинается с фото."
	NoticeBulkAccepted  = "✅ Меню принято. Начинаю проверку позиций…"
	NoticeBulkDone      = "✅ Позиции закончились. Нажми «Меню готово» для выгрузки."
	NoticeExporting     = "⏳ Выгружаю меню…"
	NoticeExported      = "🎉 Меню успешно выгружено"
	NoticeExportFailed  = "Не удалось выгрузить меню. Данные сохранены, попробуй ещё раз."
	NoticeResolveFailed = "Не удалось получить ссылку на фото. Попробуй ещё раз."
	NoticeUpdated       = "✅ Обновлено"
	NoticeNotNow        = "Эта команда сейчас недоступна. Выбери действие в меню."
	NoticeDishSaved     = "✅ Блюдо добавлено в меню."
	NoticeHelp          = "ℹ️ Как пользоваться\n\n1) Ручной режим — добавляешь блюда по одному, редактируешь, затем «Меню готово».\n2) Массовая загрузка — скидываешь всё меню подряд. Каждая позиция начинается с ФОТО.\n\nВ обоих сценариях сначала нужна ссылка на таблицу."
)

var editPrompts = map[constants.FieldID]string{
	constants.FieldName:        "✏️ Введи новое название:",
	constants.FieldComposition: "✏️ Введи новый состав/описание:",
	constants.FieldWeight:      "✏️ Введи вес/объем (например: 200 мл) или «—» чтобы очистить:",
	constants.FieldPrice:       "✏️ Введи цены построчно (каждая строка = вес - цена)\nНапр:\n400 г - 60000\n1000 г - 135000\n\nЧтобы очистить — «—».",
	constants.FieldIKPU:        "✏️ Введи ИКПУ или «—» чтобы очистить:",
}

// EditPrompt returns the prompt shown when the operator picks a field to edit.
func EditPrompt(f constants.FieldID) string {
	if p, ok := editPrompts[f]; ok {
		return p
	}
	return fmt.Sprintf("✏️ Введи новое значение поля «%s»:", f)
}
