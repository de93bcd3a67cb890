package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	UserModeNone       = ""
	UserModeNoteMaking = "note_making"
)

// Prompt fragments. The product speaks Persian; prompts carry an explicit
// language and length constraint on every completion call.
const (
	PromptContextPlaceholder = "ندارد"
	PromptRoleUserLabel      = "کاربر"
	PromptRoleAssistantLabel = "دستیار"
	PromptHistoryHeader      = "سابقه:\n"
	PromptUserMessageHeader  = "\nپیام کاربر:\n"
	PromptReplyConstraint    = "\nپاسخ به فارسی (حداکثر ۱۵۰۰ کاراکتر)"

	PromptSummarizePrefix = "متن زیر را خلاصه کن زیر ۱۵۰۰ کاراکتر فارسی:\n"

	PromptTranscriptCorrection = "متن زیر یک تبدیل گفتار به متن به زبان فارسی است که ممکن است شامل خطاهای رونویسی باشد. لطفاً فقط کلمات یا عباراتی که به اشتباه رونویسی شده‌اند را با کلمات مناسب جایگزین کن تا متن معنی‌دار و روان شود. چیزی به متن اضافه نکن و به پرسش‌های داخل متن پاسخ نده. خروجی باید به فارسی و حداکثر ۱۵۰۰ کاراکتر باشد. متن اصلی:\n"
)

// User-facing reply strings.
const (
	MsgWelcome = "👋 سلام! من چت هوشمند هستم.\nپیام متنی یا صوتی بفرستید تا با من چت کنید!\n\n✨ برای شروع، یک گزینه را انتخاب کنید."

	MsgHelp = "ℹ️ راهنما:\n/start - شروع چت\n/newchat - چت جدید\n/summary100 - خلاصه ۱۰۰ پیام\n/summaryall - خلاصه همه پیام‌ها\n/youtube - لینک کانال\n/makenote - ساخت یادداشت جدید\nارسال پیام صوتی پشتیبانی می‌شود!"

	MsgYoutube = "🌟 اگه از این چت‌بات هوشمند رایگان لذت می‌برید، لطفاً به کانال یوتیوب ما سر بزنید و سابسکرایب کنید! 👇\nhttps://www.youtube.com/@pishnahadebehtar"

	MsgNewChatStarted = "✨ چت جدید آغاز شد!\nپیام متنی یا صوتی جدیدی بفرستید تا دوباره شروع کنیم."

	MsgQuotaExceeded = "⛔ سقف مصرف ماهانه پر شده"

	MsgUserStoreError    = "🚫 خطا در ثبت کاربر. لطفاً دوباره تلاش کنید."
	MsgSessionStoreError = "🚫 خطا در دریافت جلسه فعال"
	MsgGenericError      = "🚨 خطایی رخ داد، لطفاً دوباره تلاش کنید"

	MsgAIFallback = "⚠️ خطا در دریافت پاسخ از هوش مصنوعی. لطفاً دوباره تلاش کنید."

	MsgNothingToSummarize = "📭 پیامی نیست"
	MsgSummaryCreated     = "📝 خلاصه ایجاد شد!\n"

	MsgNoteCreated     = "📝 آماده ساخت یادداشت جدید! لطفاً متن یادداشت را وارد کنید."
	MsgNoteCreateError = "🚫 خطا در ایجاد یادداشت جدید. لطفاً دوباره تلاش کنید."
	MsgNoActiveNote    = "🚫 هیچ یادداشت فعالی وجود ندارد. لطفاً یک یادداشت جدید بسازید."
	MsgNoteResume      = "📝 لطفاً ویس یا متن جدید خود را برای افزودن به یادداشت ارسال کنید."
	MsgNoteEmpty       = "🚫 یادداشت خالی است.\n\n📝 لطفاً متن یا ویس به یادداشت اضافه کنید."
	MsgNoteCopyPrefix  = "متن یادداشت: "
	MsgNoteChunkSaved  = "✅ به یادداشت اضافه شد!"

	MsgSessionEmpty    = "🚫 جلسه چت خالی است. لطفاً ابتدا پیام‌هایی ارسال کنید."
	MsgSessionExported = "📄 چت به ورد صادر شد."

	MsgEmptyMessage = "✍️ لطفاً پیام خود را بنویسید."

	MsgCopyDailyCapReached = "حد مجاز درخواست روزانه برای این کاربر به پایان رسیده است."
	MsgCopyGenerateError   = "خطا در تولید کپی"

	MsgVoiceNoTranscript = "🚫 متنی از فایل صوتی تشخیص داده نشد."
)

// Menu button labels. The Telegram adapter sends these as reply-keyboard
// buttons, so inbound text equal to a label is mapped back to its action token.
const (
	BtnNewChat    = "✨ چت جدید"
	BtnMakeNote   = "📝 ساخت یادداشت جدید"
	BtnYoutube    = "🔴 لطفاً کانال یوتیوب را دنبال کنید"
	BtnSummary100 = "📜 خلاصه ۱۰۰ پیام"
	BtnSummaryAll = "📚 خلاصه همه پیام‌ها"
	BtnHelp       = "ℹ️ راهنما"

	BtnResumeNote  = "📝 ادامه یادداشت"
	BtnCopyNote    = "📋 کپی متن"
	BtnExportWord  = "📄 وارد کردن به ورد"
	BtnBackToMenu  = "🔙 بازگشت به منوی اصلی"
	BtnNewNote     = "📝 ساخت یادداشت جدید دیگر"
)

// Event topics for the in-process bus.
const (
	TopicChatTurnCompleted = "chat.turn.completed"
	TopicNoteChunkAppended = "note.chunk.appended"
)

// Usage event kinds written by the audit consumer.
const (
	UsageEventKindChatTurn  = "chat_turn"
	UsageEventKindNoteChunk = "note_chunk"
)
