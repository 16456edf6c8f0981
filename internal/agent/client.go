package agent

import (
	"context"

	"go.uber.org/zap"

	"mellow/internal/assistant"
	"mellow/internal/healthqa"
)

// FallbackReply is sent when the knowledge base has nothing for a question.
const FallbackReply = "I don't have specific information about that in my database. " +
	"For medical questions not covered here, please consult your healthcare provider. " +
	"You can try rephrasing your question or asking about common pregnancy topics like " +
	"nutrition, symptoms, exercise, or medications."

// KnowledgeAgent answers from the local health Q&A index. It never calls
// out to a model or the network.
type KnowledgeAgent struct {
	index  *healthqa.Index
	logger *zap.Logger
}

var _ assistant.AgentClient = (*KnowledgeAgent)(nil)

func NewKnowledgeAgent(index *healthqa.Index, logger *zap.Logger) *KnowledgeAgent {
	return &KnowledgeAgent{index: index, logger: logger}
}

// Reply searches with the question's text. The best entry's answer is the
// reply content and every result is attached as a source. history is not
// consulted.
func (a *KnowledgeAgent) Reply(ctx context.Context, history []assistant.Message, question assistant.Message) (assistant.Message, error) {
	results := a.index.Search(question.Content)

	if len(results) == 0 {
		a.logger.Debug("No knowledge base match", zap.Int("query_len", len(question.Content)))
		return assistant.Message{Role: assistant.RoleAssistant, Content: FallbackReply}, nil
	}

	sources := make([]assistant.Source, len(results))
	for i, e := range results {
		sources[i] = assistant.Source{
			EntryID:  e.ID,
			Question: e.Question,
			Citation: e.Source,
		}
	}
	a.logger.Debug("Knowledge base match",
		zap.String("entry_id", results[0].ID),
		zap.Int("results", len(results)),
	)
	return assistant.Message{
		Role:    assistant.RoleAssistant,
		Content: results[0].Answer,
		Sources: sources,
	}, nil
}
