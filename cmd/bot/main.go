package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/brainless/travlyng/dataprovider"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Бот читает каталог и планы через HTTP API, а не напрямую из базы:
// вся логика доступа к пунктам маршрута сосредоточена в dataprovider.

// resourceForTag сопоставляет тег сущности с именем ресурса API.
func resourceForTag(tag string) string {
	switch tag {
	case "place":
		return "places"
	case "accommodation":
		return "accommodations"
	case "restaurant":
		return "restaurants"
	}
	return ""
}

func tagLabel(tag string) string {
	switch tag {
	case "place":
		return "Место"
	case "accommodation":
		return "Жилье"
	case "restaurant":
		return "Ресторан"
	}
	return tag
}

func recordString(r dataprovider.Record, key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

func recordID(r dataprovider.Record, key string) int64 {
	switch v := r[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// renderItem возвращает строку вида «Место: Фусими Инари (2025-04-01)».
// Висячие ссылки не считаются ошибкой: вместо имени выводится пометка.
func renderItem(p *dataprovider.Provider, item dataprovider.Record) string {
	tag := recordString(item, "entity_type")
	line := tagLabel(tag) + ": "

	resource := resourceForTag(tag)
	if resource == "" {
		return line + "неизвестный тип записи"
	}
	entity, err := p.GetOne(resource, recordID(item, "entity_id"))
	if err != nil {
		line += "(запись недоступна)"
	} else {
		line += recordString(entity, "name")
	}
	if date := recordString(item, "visit_date"); date != "" {
		line += fmt.Sprintf(" (%s)", date)
	}
	if notes := recordString(item, "notes"); notes != "" {
		line += " — " + notes
	}
	return line
}

func sendPlan(bot *tgbotapi.BotAPI, p *dataprovider.Provider, chatID, planID int64) {
	plan, err := p.GetOne("plans", planID)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "План не найден."))
		return
	}

	result, err := p.ListByParent("plan_items", planID, dataprovider.ListParams{
		Sort: dataprovider.Sort{Field: "visit_date", Order: "ASC"},
	})
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "Не удалось получить пункты плана."))
		return
	}

	var sb strings.Builder
	sb.WriteString(recordString(plan, "name"))
	if start := recordString(plan, "start_date"); start != "" {
		sb.WriteString(fmt.Sprintf("\n%s — %s", start, recordString(plan, "end_date")))
	}
	if len(result.Records) == 0 {
		sb.WriteString("\n\nПлан пока пуст.")
	}
	for i, item := range result.Records {
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, renderItem(p, item)))
	}
	bot.Send(tgbotapi.NewMessage(chatID, sb.String()))
}

func main() {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	provider := dataprovider.New(baseURL)

	// Инициализация Telegram Bot API
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		log.Fatal("Не указан токен бота (BOT_TOKEN)")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Fatal("Ошибка инициализации бота:", err)
	}
	log.Printf("Запущен бот %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		// --- CallbackQuery (inline buttons) ---
		if cq := update.CallbackQuery; cq != nil {
			bot.Request(tgbotapi.NewCallback(cq.ID, ""))

			if strings.HasPrefix(cq.Data, "PLAN_") {
				planID, _ := strconv.ParseInt(strings.TrimPrefix(cq.Data, "PLAN_"), 10, 64)
				sendPlan(bot, provider, cq.From.ID, planID)
			}
			continue
		}

		// --- Обычные сообщения ---
		if update.Message == nil {
			continue
		}
		msg := update.Message
		chatID := msg.Chat.ID

		// Команды
		if msg.IsCommand() {
			switch msg.Command() {
			case "start":
				bot.Send(tgbotapi.NewMessage(chatID,
					"Здравствуйте! Команды:\n/plans — список планов\n/plan <ид> — маршрут плана\nЛюбой текст — поиск по каталогу."))

			case "plans":
				result, err := provider.List("plans", dataprovider.ListParams{})
				if err != nil || len(result.Records) == 0 {
					bot.Send(tgbotapi.NewMessage(chatID, "Планов пока нет."))
					continue
				}
				btns := make([]tgbotapi.InlineKeyboardButton, len(result.Records))
				for i, plan := range result.Records {
					name := recordString(plan, "name")
					if len(name) > 30 {
						name = name[:30] + "..."
					}
					btns[i] = tgbotapi.NewInlineKeyboardButtonData(name, fmt.Sprintf("PLAN_%d", recordID(plan, "id")))
				}
				row := tgbotapi.NewInlineKeyboardRow(btns...)
				reply := tgbotapi.NewMessage(chatID, "Ваши планы:")
				reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
				bot.Send(reply)

			case "plan":
				planID, err := strconv.ParseInt(msg.CommandArguments(), 10, 64)
				if err != nil || planID <= 0 {
					bot.Send(tgbotapi.NewMessage(chatID, "Используйте: /plan <ид_плана>"))
					continue
				}
				sendPlan(bot, provider, chatID, planID)
			}
			continue
		}

		// Поиск по каталогу по тексту
		kw := strings.TrimSpace(msg.Text)
		if kw == "" {
			continue
		}
		results, err := provider.Search(kw)
		if err != nil || len(results) == 0 {
			bot.Send(tgbotapi.NewMessage(chatID, "Ничего не найдено."))
			continue
		}
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Найдено: %d", len(results)))
		for _, r := range results {
			sb.WriteString(fmt.Sprintf("\n%s: %s", tagLabel(recordString(r, "entity_type")), recordString(r, "name")))
		}
		bot.Send(tgbotapi.NewMessage(chatID, sb.String()))
	}
}
