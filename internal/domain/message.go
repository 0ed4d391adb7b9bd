package domain

// сообщение против списывания, показывается перед основной игрой
type AntiCheatingMessage struct {
	ID         int    `json:"id" bson:"id"`
	Text       string `json:"text" bson:"text"`
	ShownCount int    `json:"shown_count" bson:"shown_count"`
}

// то, что уходит клиенту
type MessageView struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

func (m AntiCheatingMessage) View() MessageView {
	return MessageView{ID: m.ID, Text: m.Text}
}
