package chat

// Papéis usados pelo modelo externo ao receber o histórico
const (
	TurnRoleUser  = "user"
	TurnRoleModel = "model"
)

// Turn é um turno de conversa no formato esperado pelo modelo externo
type Turn struct {
	Role string
	Text string
}

// ProjectHistory converte as mensagens de uma sessão nos turnos usados para
// continuar a conversa. A ordem é preservada e "assistant" vira "model".
func ProjectHistory(messages []Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, msg := range messages {
		role := TurnRoleUser
		if msg.Role == RoleAssistant {
			role = TurnRoleModel
		}
		turns = append(turns, Turn{Role: role, Text: msg.Content})
	}
	return turns
}
