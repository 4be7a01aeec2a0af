package bootstrap

import (
	"chatsync-be/internal/authz"
	"chatsync-be/internal/config"
	"chatsync-be/internal/handler"
	"chatsync-be/internal/pkg/linkpreview"
	"chatsync-be/internal/pkg/logger"
	"chatsync-be/internal/pkg/sanitizer"
	"chatsync-be/internal/repository/unitofwork"
	"chatsync-be/internal/service"
	"chatsync-be/internal/websocket"
	"chatsync-be/pkg/eventbus"

	"github.com/ThreeDotsLabs/watermill"
	"gorm.io/gorm"
)

// Container wires every component once at startup. main.go runs the
// background pieces; the server registers the handlers.
type Container struct {
	// Handlers
	MessageHandler  handler.IMessageHandler
	BookmarkHandler handler.IBookmarkHandler
	MentionHandler  handler.IMentionHandler
	DeviceHandler   handler.IDeviceHandler
	WsHandler       handler.IWsHandler

	// Realtime plumbing (exposed for main.go to run)
	Hub        *websocket.Hub
	Dispatcher *websocket.Dispatcher
	Bus        *eventbus.Bus

	// Background services
	MessageService service.IMessageService
	ReceiptService service.IReceiptService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	bus := eventbus.New(watermillLogger)

	// 3. Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.RealtimeLogPath)
	hub := websocket.NewHub(wsLogger)

	// 4. Services
	guard := authz.NewGuard()
	contentSanitizer := sanitizer.New()
	previews := linkpreview.NewFetcher(cfg.Chat.LinkPreviewTimeout)
	// Shared by toggles and the delete/restore pin paths.
	pinLock := service.NewPinLock()

	messageService := service.NewMessageService(uowFactory, bus, guard, contentSanitizer, previews, pinLock, sysLogger)
	reactionService := service.NewReactionService(uowFactory, bus, sysLogger)
	pinService := service.NewPinService(uowFactory, bus, pinLock, sysLogger)
	mentionService := service.NewMentionService(uowFactory, bus, guard, sysLogger)
	receiptService := service.NewReceiptService(uowFactory, bus, sysLogger)
	bookmarkService := service.NewBookmarkService(uowFactory)
	deviceService := service.NewDeviceService(uowFactory, bus, guard, sysLogger)
	threadService := service.NewThreadService(uowFactory)
	queryService := service.NewQueryService(uowFactory)

	// 5. Websocket routing
	wsRouter := websocket.NewRouter(
		messageService,
		reactionService,
		pinService,
		mentionService,
		receiptService,
		deviceService,
		uowFactory,
		bus,
		wsLogger,
	)
	dispatcher := websocket.NewDispatcher(bus, hub, wsLogger)

	// 6. Handlers
	return &Container{
		MessageHandler:  handler.NewMessageHandler(queryService, threadService, pinService),
		BookmarkHandler: handler.NewBookmarkHandler(bookmarkService),
		MentionHandler:  handler.NewMentionHandler(mentionService),
		DeviceHandler:   handler.NewDeviceHandler(deviceService),
		WsHandler:       handler.NewWsHandler(hub, wsRouter, deviceService),

		Hub:        hub,
		Dispatcher: dispatcher,
		Bus:        bus,

		MessageService: messageService,
		ReceiptService: receiptService,

		Logger: sysLogger,
	}
}
