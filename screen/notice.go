package screen

type NoticeLevel string

const (
	InfoLevel    NoticeLevel = "info"
	SuccessLevel NoticeLevel = "success"
	ErrorLevel   NoticeLevel = "error"
)

const maxNotices = 20

// Notice is a transient message shown above the table after an action.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

func SuccessNotice(message string) Notice {
	return Notice{Level: SuccessLevel, Message: message}
}

func ErrorNotice(message string) Notice {
	return Notice{Level: ErrorLevel, Message: message}
}

func InfoNotice(message string) Notice {
	return Notice{Level: InfoLevel, Message: message}
}

// Notices drains the pending notices.
func (s *Screen[R]) Notices() []Notice {

	s.mu.Lock()
	defer s.mu.Unlock()

	notices := s.notices
	s.notices = nil

	return notices
}

func (s *Screen[R]) pushNotice(notice Notice) {

	s.notices = append(s.notices, notice)
	if len(s.notices) > maxNotices {
		s.notices = s.notices[len(s.notices)-maxNotices:]
	}
}

// Notify queues a notice raised outside of the screen, such as a form submission.
func (s *Screen[R]) Notify(notice Notice) {
	s.notify(notice)
}
