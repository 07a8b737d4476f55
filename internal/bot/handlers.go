package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/sportify/internal/api/sportsdb"
	"github.com/omarshaarawi/sportify/internal/auth"
	"github.com/omarshaarawi/sportify/internal/navigation"
	"github.com/omarshaarawi/sportify/internal/service"
)

const helpText = `Available commands:
/register <username> <email> <password> - Create an account
/login <username> <password> - Sign in
/logout - Sign out
/profile - Your account
/events [league id] - Matches for a league
/search <query> - Search events
/event <id> - Event details
/team <id> - Team details
/teams <name> - Search teams
/league <id> - League details
/player <id> - Player details
/findplayer <team> | <player> - Find a player in a squad
/favorites - Your saved events
/fav <event id> - Save an event
/unfav <event id> - Forget an event
/theme - Switch light/dark
/items - Browse the catalog`

// public commands work without a session
var public = map[string]bool{"start": true, "help": true, "register": true, "login": true}

// credentialCommands carry a password in the message text.
var credentialCommands = map[string]bool{"register": true, "login": true}

type Handler struct {
	sports   *service.SportsService
	accounts *auth.Service
	sessions *auth.Sessions
}

func NewHandler(sports *service.SportsService, accounts *auth.Service, sessions *auth.Sessions) *Handler {
	return &Handler{sports: sports, accounts: accounts, sessions: sessions}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	var userID int64
	if update.Message.From != nil {
		userID = update.Message.From.ID
	}

	if !public[command] {
		state := h.sessions.Get(userID)
		if !state.Authenticated || state.User == nil {
			if isKnown(command) {
				msg.Text = "🔒 Please /login or /register first."
			} else {
				msg.Text = "Unknown command. Use /help to see available commands."
			}
			return msg
		}
		h.handleMember(ctx, &msg, command, args, userID, *state.User)
		return msg
	}

	switch command {
	case "start":
		msg.Text = "Welcome to Sportify! Use /register or /login to get started, then /events to see what's on."
	case "help":
		msg.Text = helpText
		msg.ParseMode = ""
	case "register":
		h.handleRegister(ctx, &msg, userID, args)
	case "login":
		h.handleLogin(ctx, &msg, userID, args)
	}
	return msg
}

func (h *Handler) handleMember(ctx context.Context, msg *tgbotapi.MessageConfig, command, args string, userID int64, profile auth.Profile) {
	owner := profile.Username

	switch command {
	case "logout":
		h.sessions.Dispatch(userID, auth.Logout{})
		msg.Text = "👋 Logged out."
	case "profile":
		applyView(msg, h.sports.Profile(ctx, profile))
	case "events":
		applyView(msg, h.sports.Feed(ctx, owner, firstArg(args)))
	case "search":
		applyView(msg, h.sports.Search(ctx, owner, args))
	case "event":
		h.handleLookup(msg, args, "event", func(id string) (service.View, error) {
			return h.sports.EventDetails(ctx, owner, id)
		})
	case "team":
		h.handleLookup(msg, args, "team", func(id string) (service.View, error) {
			return h.sports.TeamDetails(ctx, id)
		})
	case "teams":
		if args == "" {
			msg.Text = "Please provide a team name. Usage: /teams <name>"
			return
		}
		applyView(msg, h.sports.Teams(ctx, args))
	case "league":
		if args == "" {
			args = h.sports.DefaultLeague()
		}
		h.handleLookup(msg, args, "league", func(id string) (service.View, error) {
			return h.sports.LeagueDetails(ctx, id)
		})
	case "player":
		h.handleLookup(msg, args, "player", func(id string) (service.View, error) {
			return h.sports.PlayerDetails(ctx, id)
		})
	case "findplayer":
		h.handleFindPlayer(ctx, msg, args)
	case "favorites":
		applyView(msg, h.sports.Favorites(ctx, owner))
	case "fav":
		h.handleAddFavorite(ctx, msg, owner, firstArg(args))
	case "unfav":
		h.handleRemoveFavorite(ctx, msg, owner, firstArg(args))
	case "theme":
		applyView(msg, h.sports.ToggleTheme(ctx, owner))
	case "items":
		applyView(msg, h.sports.Items(ctx))
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}
}

func (h *Handler) handleRegister(ctx context.Context, msg *tgbotapi.MessageConfig, userID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		msg.Text = "Usage: /register <username> <email> <password>"
		return
	}
	username, email, password := fields[0], fields[1], fields[2]
	if err := auth.ValidateRegistration(username, email, password); err != nil {
		msg.Text = validationMessage(err)
		return
	}

	h.sessions.Dispatch(userID, auth.LoginStart{})
	profile, err := h.accounts.Register(ctx, username, email, password)
	if err != nil {
		h.sessions.Dispatch(userID, auth.LoginFailure{})
		if errors.Is(err, auth.ErrDuplicateUsername) {
			msg.Text = "Username already exists."
			return
		}
		slog.Error("Error registering user", "error", err)
		msg.Text = "Registration failed. Please try again later."
		return
	}
	h.sessions.Dispatch(userID, auth.LoginSuccess{Profile: profile})
	msg.Text = fmt.Sprintf("✅ Welcome, %s! Try /events.", profile.FirstName)
	msg.ParseMode = ""
}

func (h *Handler) handleLogin(ctx context.Context, msg *tgbotapi.MessageConfig, userID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		msg.Text = "Usage: /login <username> <password>"
		return
	}
	if err := auth.ValidateLogin(fields[0], fields[1]); err != nil {
		msg.Text = validationMessage(err)
		return
	}

	h.sessions.Dispatch(userID, auth.LoginStart{})
	profile, err := h.accounts.Login(ctx, fields[0], fields[1])
	if err != nil {
		h.sessions.Dispatch(userID, auth.LoginFailure{})
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Error("Error logging in", "error", err)
		}
		msg.Text = "Invalid credentials."
		return
	}
	h.sessions.Dispatch(userID, auth.LoginSuccess{Profile: profile})
	msg.Text = fmt.Sprintf("✅ Welcome back, %s!", profile.FirstName)
	msg.ParseMode = ""
}

func (h *Handler) handleLookup(msg *tgbotapi.MessageConfig, args, what string, lookup func(string) (service.View, error)) {
	id := firstArg(args)
	if id == "" {
		msg.Text = fmt.Sprintf("Please provide an id. Usage: /%s <id>", what)
		msg.ParseMode = ""
		return
	}
	v, err := lookup(id)
	if err != nil {
		msg.Text = lookupFailure(what, err)
		return
	}
	applyView(msg, v)
}

func (h *Handler) handleFindPlayer(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	team, player, ok := strings.Cut(args, "|")
	team, player = strings.TrimSpace(team), strings.TrimSpace(player)
	if !ok || team == "" || player == "" {
		msg.Text = "Usage: /findplayer <team> | <player>"
		return
	}
	v, err := h.sports.FindPlayer(ctx, team, player)
	if err != nil {
		msg.Text = lookupFailure("player", err)
		return
	}
	applyView(msg, v)
}

func (h *Handler) handleAddFavorite(ctx context.Context, msg *tgbotapi.MessageConfig, owner, eventID string) {
	if eventID == "" {
		msg.Text = "Usage: /fav <event id>"
		return
	}
	if err := h.sports.AddFavorite(ctx, owner, eventID); err != nil {
		msg.Text = lookupFailure("event", err)
		return
	}
	msg.Text = "❤️ Added to favorites."
}

func (h *Handler) handleRemoveFavorite(ctx context.Context, msg *tgbotapi.MessageConfig, owner, eventID string) {
	if eventID == "" {
		msg.Text = "Usage: /unfav <event id>"
		return
	}
	if !h.sports.RemoveFavorite(ctx, owner, eventID) {
		msg.Text = "That event is not in your favorites."
		return
	}
	msg.Text = "🤍 Removed from favorites."
}

// HandleCallback follows a button press. The returned message is nil when the
// press only needs a toast.
func (h *Handler) HandleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) (tgbotapi.CallbackConfig, *tgbotapi.MessageConfig) {
	if query.From == nil || query.Message == nil || query.Message.Chat == nil {
		return tgbotapi.NewCallback(query.ID, ""), nil
	}

	state := h.sessions.Get(query.From.ID)
	if !state.Authenticated || state.User == nil {
		return tgbotapi.NewCallback(query.ID, "🔒 Please /login first."), nil
	}
	owner := state.User.Username

	route, err := navigation.Decode(query.Data)
	if err != nil {
		slog.Error("Error decoding callback", "data", query.Data, "error", err)
		return tgbotapi.NewCallback(query.ID, "This button has expired."), nil
	}

	msg := tgbotapi.NewMessage(query.Message.Chat.ID, "")
	msg.ParseMode = "Markdown"

	switch route.Name {
	case navigation.ToggleFavorite:
		ref := route.Payload.(navigation.EventRef)
		on, err := h.sports.ToggleFavorite(ctx, owner, ref.EventID)
		if err != nil {
			return tgbotapi.NewCallback(query.ID, lookupFailure("event", err)), nil
		}
		if on {
			return tgbotapi.NewCallback(query.ID, "❤️ Added to favorites"), nil
		}
		return tgbotapi.NewCallback(query.ID, "🤍 Removed from favorites"), nil
	case navigation.Home:
		applyView(&msg, h.sports.Feed(ctx, owner, ""))
	case navigation.Favorites:
		applyView(&msg, h.sports.Favorites(ctx, owner))
	default:
		v, err := h.follow(ctx, owner, route)
		if err != nil {
			return tgbotapi.NewCallback(query.ID, lookupFailure(string(route.Name), err)), nil
		}
		applyView(&msg, v)
	}
	return tgbotapi.NewCallback(query.ID, ""), &msg
}

func (h *Handler) follow(ctx context.Context, owner string, route navigation.Route) (service.View, error) {
	switch ref := route.Payload.(type) {
	case navigation.EventRef:
		return h.sports.EventDetails(ctx, owner, ref.EventID)
	case navigation.TeamRef:
		return h.sports.TeamDetails(ctx, ref.TeamID)
	case navigation.LeagueRef:
		return h.sports.LeagueDetails(ctx, ref.LeagueID)
	case navigation.PlayerRef:
		return h.sports.PlayerDetails(ctx, ref.PlayerID)
	}
	return service.View{}, navigation.ErrUnknownRoute
}

func applyView(msg *tgbotapi.MessageConfig, v service.View) {
	msg.Text = v.Text
	if markup, ok := keyboard(v); ok {
		msg.ReplyMarkup = markup
	}
}

func keyboard(v service.View) (tgbotapi.InlineKeyboardMarkup, bool) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range v.Buttons {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			data, err := b.Route.Encode()
			if err != nil {
				slog.Error("Error encoding route", "route", b.Route.Name, "error", err)
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, data))
		}
		if len(buttons) > 0 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
		}
	}
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func lookupFailure(what string, err error) string {
	if sportsdb.OutcomeOf(err) == sportsdb.Empty {
		return fmt.Sprintf("🔍 No %s found.", what)
	}
	slog.Error("Error fetching details", "kind", what, "error", err)
	return fmt.Sprintf("Error fetching %s. Please try again later.", what)
}

func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), auth.ErrInvalidInput.Error()+": ")
}

func firstArg(args string) string {
	if fields := strings.Fields(args); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func isKnown(command string) bool {
	switch command {
	case "logout", "profile", "events", "search", "event", "team", "teams", "league",
		"player", "findplayer", "favorites", "fav", "unfav", "theme", "items":
		return true
	}
	return false
}
