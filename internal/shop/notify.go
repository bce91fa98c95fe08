package shop

// Severity — тип уведомления
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
)

// Notification — короткое сообщение для пользователя
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Notifier получает уведомления от модели; модель ничего не рисует сама
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc адаптирует функцию к Notifier
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type discard struct{}

func (discard) Notify(Notification) {}

// Inbox копит уведомления до Drain
type Inbox struct {
	items []Notification
}

func (in *Inbox) Notify(n Notification) { in.items = append(in.items, n) }

// Drain отдаёт накопленное и очищает ящик
func (in *Inbox) Drain() []Notification {
	out := in.items
	in.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}
