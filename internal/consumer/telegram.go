// Package consumer
package consumer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"gastobot/internal/model"
	"gastobot/internal/service"
)

const (
	start        = "start"
	expense      = "gasto"
	savings      = "ahorro"
	summary      = "resumen"
	periodReport = "reporte"
	annualReport = "reporte_anual"
	history      = "historial"
)

const (
	dateLayout    = "2006-01-02"
	handleTimeout = 10 * time.Second
)

const (
	greetingText         = "👋 Hola, soy tu bot de gastos. Usa /gasto para registrar un gasto."
	expenseUsageText     = "❌ Uso: /gasto <monto> <categoría> <descripción opcional>"
	savingsUsageText     = "❌ Uso: /ahorro <monto> <descripción opcional>"
	historyUsageText     = "❌ Uso correcto: /historial YYYY-MM-DD YYYY-MM-DD"
	unknownCategoryText  = "❌ Categoría no válida."
	reservedCategoryText = "⚠️ Usa /ahorro para registrar aportes a la categoría de ahorro."
	invalidRangeText     = "❌ La fecha inicial debe ser anterior o igual a la final."
	noEntriesText        = "No hay gastos registrados aún."
	emptyRangeText       = "No hay gastos en ese rango."
	writeFailureText     = "⚠️ No pudimos guardar el registro. Inténtalo de nuevo más tarde."
	readFailureText      = "⚠️ No pudimos consultar los gastos. Inténtalo de nuevo más tarde."
)

// Bot polls the telegram server every n seconds and dispatches group
// commands to the recorder and reporter services.
type Bot struct {
	bot         *tgbotapi.BotAPI
	updatesChan tgbotapi.UpdatesChannel
	validator   *validator.Validate
	recorder    *service.Recorder
	reporter    *service.Reporter
}

func NewBot(bot *tgbotapi.BotAPI, updatesChan tgbotapi.UpdatesChannel, validator *validator.Validate,
	recorder *service.Recorder, reporter *service.Reporter) *Bot {
	return &Bot{
		bot:         bot,
		updatesChan: updatesChan,
		validator:   validator,
		recorder:    recorder,
		reporter:    reporter,
	}
}

func (b *Bot) Consume(ctx context.Context) {
	logrus.Infof("telegram bot %s started consuming", b.bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			logrus.Infof("bot consumer stopped: %v", ctx.Err())
			return

		case update := <-b.updatesChan:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	newCtx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	switch message.Command() {
	case start:
		b.reply(message, greetingText)
	case expense:
		b.handleExpense(newCtx, message)
	case savings:
		b.handleSavings(newCtx, message)
	case summary:
		b.handleSummary(newCtx, message)
	case periodReport:
		b.handlePeriodReport(newCtx, message)
	case annualReport:
		b.handleAnnualReport(newCtx, message)
	case history:
		b.handleHistory(newCtx, message)
	default:
		logrus.Infof("unknown command: %s", message.Text)
	}
}

func (b *Bot) handleExpense(ctx context.Context, message *tgbotapi.Message) {
	args := strings.Fields(message.CommandArguments())
	if len(args) < 2 {
		b.reply(message, expenseUsageText)
		return
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		b.reply(message, expenseUsageText)
		return
	}

	entry, err := b.recorder.RecordExpense(ctx, message.Chat.ID, actorName(message), amount, args[1], strings.Join(args[2:], " "))
	if err != nil {
		b.replyRecordError(message, err, expenseUsageText)
		return
	}
	b.reply(message, fmt.Sprintf("✅ Gasto registrado: $%.2f en *%s* (%s)", entry.Amount, entry.Category, entry.Description))
}

func (b *Bot) handleSavings(ctx context.Context, message *tgbotapi.Message) {
	args := strings.Fields(message.CommandArguments())
	if len(args) < 1 {
		b.reply(message, savingsUsageText)
		return
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		b.reply(message, savingsUsageText)
		return
	}

	entry, err := b.recorder.RecordSavings(ctx, message.Chat.ID, actorName(message), amount, strings.Join(args[1:], " "))
	if err != nil {
		b.replyRecordError(message, err, savingsUsageText)
		return
	}
	b.reply(message, fmt.Sprintf("💰 Aporte registrado: $%.2f a *%s* (%s)", entry.Amount, model.SavingsCategory, entry.Description))
}

func (b *Bot) handleSummary(ctx context.Context, message *tgbotapi.Message) {
	totals, err := b.reporter.CategorySummary(ctx, message.Chat.ID)
	if err != nil {
		logrus.Errorf("summary report failed: %v", err)
		b.reply(message, readFailureText)
		return
	}
	if len(totals) == 0 {
		b.reply(message, noEntriesText)
		return
	}
	b.reply(message, renderSummary(totals))
}

func (b *Bot) handlePeriodReport(ctx context.Context, message *tgbotapi.Message) {
	lines, err := b.reporter.PeriodReport(ctx, message.Chat.ID)
	if err != nil {
		logrus.Errorf("period report failed: %v", err)
		b.reply(message, readFailureText)
		return
	}
	b.reply(message, renderPeriodReport(lines))
}

func (b *Bot) handleAnnualReport(ctx context.Context, message *tgbotapi.Message) {
	lines, err := b.reporter.AnnualReport(ctx, message.Chat.ID)
	if err != nil {
		logrus.Errorf("annual report failed: %v", err)
		b.reply(message, readFailureText)
		return
	}
	b.reply(message, renderAnnualReport(lines))
}

func (b *Bot) handleHistory(ctx context.Context, message *tgbotapi.Message) {
	args := strings.Fields(message.CommandArguments())
	if len(args) != 2 {
		b.reply(message, historyUsageText)
		return
	}
	for _, arg := range args {
		if err := b.validator.Var(arg, "datetime="+dateLayout); err != nil {
			b.reply(message, historyUsageText)
			return
		}
	}
	from, err := time.ParseInLocation(dateLayout, args[0], time.UTC)
	if err != nil {
		b.reply(message, historyUsageText)
		return
	}
	to, err := time.ParseInLocation(dateLayout, args[1], time.UTC)
	if err != nil {
		b.reply(message, historyUsageText)
		return
	}

	entries, err := b.reporter.History(ctx, message.Chat.ID, from, to)
	if err != nil {
		if errors.Is(err, model.ErrInvalidRange) {
			b.reply(message, invalidRangeText)
			return
		}
		logrus.Errorf("history report failed: %v", err)
		b.reply(message, readFailureText)
		return
	}
	if len(entries) == 0 {
		b.reply(message, emptyRangeText)
		return
	}
	b.reply(message, renderHistory(args[0], args[1], entries))
}

func (b *Bot) replyRecordError(message *tgbotapi.Message, err error, usage string) {
	var validation *model.ValidationError
	switch {
	case errors.Is(err, model.ErrReservedCategory):
		b.reply(message, reservedCategoryText)
	case errors.Is(err, model.ErrUnknownCategory):
		b.reply(message, unknownCategoryText)
	case errors.As(err, &validation):
		b.reply(message, usage)
	default:
		logrus.Errorf("record failed: %v", err)
		b.reply(message, writeFailureText)
	}
}

func (b *Bot) reply(message *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := b.bot.Send(msg); err != nil {
		logrus.Errorf("telegram bot couldn't send message: %v", err)
	}
}

func actorName(message *tgbotapi.Message) string {
	if message.From == nil {
		return ""
	}
	return message.From.FirstName
}
