package telegram

import (
	"fmt"
	"math"
	"strings"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

// productListLimit qidiruv javobida ko'rsatiladigan max tovarlar
const productListLimit = 5

var categoryLabels = map[entity.Category]string{
	entity.CategoryGPU:         "Видеокарта",
	entity.CategoryCPU:         "Процессор",
	entity.CategoryMotherboard: "Материнская плата",
	entity.CategorySSD:         "SSD-накопитель",
	entity.CategoryPSU:         "Блок питания",
	entity.CategoryCase:        "Корпус",
}

func categoryLabel(cat entity.Category) string {
	if label, ok := categoryLabels[cat]; ok {
		return label
	}
	return string(cat)
}

// formatPrice "175 000 ₸". Guruhlash printer lokali orqali.
func (h *BotHandler) formatPrice(v float64) string {
	if h.printer == nil {
		return fmt.Sprintf("%.0f ₸", v)
	}
	return h.printer.Sprintf("%d ₸", int64(math.Round(v)))
}

func (h *BotHandler) formatBuildResult(result *entity.BuildResult) string {
	if result == nil || result.Build == nil {
		return "Не получилось собрать конфигурацию. Попробуйте ещё раз."
	}

	var sb strings.Builder
	sb.WriteString("Ваша сборка готова:\n\n")
	for _, cat := range entity.Categories() {
		p, ok := result.Build.Component(cat)
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("• %s: %s — %s\n", categoryLabel(cat), p.Name, h.formatPrice(p.EffectivePrice())))
	}
	sb.WriteString(fmt.Sprintf("\nИтого: %s", h.formatPrice(result.Build.TotalPrice())))

	if result.Relaxed {
		sb.WriteString("\n\nЧтобы укомплектовать сборку, пришлось немного расширить ценовые рамки по категориям.")
	}
	for _, w := range result.Warnings {
		sb.WriteString("\n⚠️ " + warningText(w))
	}
	sb.WriteString("\n\nНапишите артикул товара, если нужны подробности, или назовите другой бюджет.")
	return sb.String()
}

func warningText(w entity.Violation) string {
	switch w.Code {
	case entity.FailureOverBudget:
		return "Итоговая сумма немного превышает заявленный бюджет."
	case entity.FailureRatioImbalance:
		return "Соотношение цен процессора и видеокарты отличается от рекомендуемого для игровых сборок."
	case entity.FailureInsufficientPSU:
		return "Запас мощности блока питания меньше рекомендуемого."
	case entity.FailureSocketMismatch:
		return "Совместимость сокетов процессора и материнской платы стоит проверить вручную."
	}
	if w.Message != "" {
		return w.Message
	}
	return string(w.Code)
}

func (h *BotHandler) formatBuildFailure(f *entity.BuildFailure) string {
	if f == nil {
		return "Не получилось собрать конфигурацию. Попробуйте ещё раз."
	}

	var sb strings.Builder
	switch f.Code {
	case entity.FailureInfeasibleBudget:
		sb.WriteString("С таким бюджетом полную сборку не собрать. Попробуйте увеличить сумму или напишите «бюджетная сборка» — предложу самый доступный вариант.")
	case entity.FailureNoCandidates:
		sb.WriteString(fmt.Sprintf("Не нашлось подходящих вариантов в категории «%s» под этот бюджет.", categoryLabel(f.Category)))
	case entity.FailureSocketMismatch:
		sb.WriteString("Не удалось подобрать совместимые процессор и материнскую плату. Попробуйте немного изменить бюджет.")
	case entity.FailureInsufficientPSU:
		sb.WriteString("Не удалось подобрать блок питания с достаточным запасом мощности для этой видеокарты. Попробуйте изменить бюджет.")
	case entity.FailureOverBudget:
		sb.WriteString("Не получилось уложиться в названную сумму. Увеличьте бюджет или выберите класс сборки попроще.")
	case entity.FailureInvalidInput:
		sb.WriteString("Не удалось распознать запрос. Напишите бюджет сборки, например: «собери ПК за 400 000».")
	default:
		sb.WriteString("Не получилось собрать конфигурацию. Попробуйте изменить бюджет или повторить запрос.")
	}

	if len(f.Suggestions) > 0 {
		sb.WriteString("\n\nБлижайшие по цене варианты:\n")
		for _, p := range f.Suggestions {
			sb.WriteString(fmt.Sprintf("• %s — %s\n", p.Name, h.formatPrice(p.EffectivePrice())))
		}
	}
	return sb.String()
}

func (h *BotHandler) formatProductList(products []entity.Product, limit int) string {
	if limit <= 0 || limit > len(products) {
		limit = len(products)
	}

	var sb strings.Builder
	sb.WriteString("Вот что нашлось:\n")
	for i := 0; i < limit; i++ {
		p := products[i]
		sb.WriteString(fmt.Sprintf("\n• %s — %s", p.Name, h.formatPrice(p.EffectivePrice())))
		if !p.InStock() {
			sb.WriteString(" (нет в наличии)")
		}
		sb.WriteString("\n  Артикул: " + p.SKU)
	}
	sb.WriteString("\n\nНапишите артикул, чтобы узнать подробности о товаре.")
	return sb.String()
}

func (h *BotHandler) formatHistory(recs []entity.RequestLog) string {
	if len(recs) == 0 {
		return "История запросов пока пуста."
	}

	var sb strings.Builder
	sb.WriteString("Последние запросы:\n")
	for _, r := range recs {
		sb.WriteString(fmt.Sprintf("\n%s · «%s» — %s", r.CreatedAt.Format("02.01 15:04"), truncateQuery(r.Query, 40), h.historyLine(r)))
	}
	return sb.String()
}

func (h *BotHandler) historyLine(r entity.RequestLog) string {
	label := intentLabel(r.Intent)
	switch {
	case r.Outcome == "ok" && r.Total > 0:
		return fmt.Sprintf("%s, итог %s", label, h.formatPrice(r.Total))
	case r.Outcome == "failed":
		return label + ", не удалось"
	default:
		return label
	}
}

func intentLabel(intent string) string {
	switch entity.MessageIntent(intent) {
	case entity.IntentPCBuild:
		return "сборка"
	case entity.IntentPCBudgetAsk:
		return "вопрос о бюджете"
	case entity.IntentProductSearch:
		return "поиск товара"
	case entity.IntentFAQ:
		return "вопрос"
	default:
		return "диалог"
	}
}

func truncateQuery(q string, max int) string {
	q = strings.TrimSpace(strings.ReplaceAll(q, "\n", " "))
	runes := []rune(q)
	if len(runes) <= max {
		return q
	}
	return string(runes[:max]) + "…"
}
