package services

import (
	"testing"
	"time"

	"collabhub_backend/internal/models"
	"collabhub_backend/internal/services/dto"
	"collabhub_backend/internal/testutil"
	"collabhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	env := newTestEnv(t)
	brandUser, _ := testutil.CreateBrand(t, env.db, "Acme")
	influencer, _ := testutil.CreateInfluencer(t, env.db, "Alice")

	message, err := env.services.MessageService.SendMessage(env.db, testutil.RC(brandUser), &dto.SendMessageRequest{
		ReceiverID: influencer.ID,
		Content:    "Hi Alice, want to collaborate?",
	})
	require.NoError(t, err)
	assert.Equal(t, brandUser.ID, message.SenderID)
	assert.False(t, message.Read)

	delivered := env.publisher.For(influencer.ID)
	require.Len(t, delivered, 1)
	assert.Equal(t, message.ID, delivered[0].ID)
	assert.Empty(t, env.publisher.For(brandUser.ID))
}

func TestSendMessage_Errors(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, models.UserRoleBrand, "Owner")
	other := testutil.CreateUser(t, env.db, models.UserRoleInfluencer, "Alice")
	rc := testutil.RC(user)

	_, err := env.services.MessageService.SendMessage(env.db, rc, &dto.SendMessageRequest{ReceiverID: user.ID, Content: "me"})
	assert.ErrorIs(t, err, apperrors.ErrMessageToSelf)

	_, err = env.services.MessageService.SendMessage(env.db, rc, &dto.SendMessageRequest{
		ReceiverID: "00000000-0000-0000-0000-000000000000",
		Content:    "hello",
	})
	assert.ErrorIs(t, err, apperrors.ErrRecipientNotFound)

	_, err = env.services.MessageService.SendMessage(env.db, rc, &dto.SendMessageRequest{ReceiverID: other.ID, Content: "   "})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	assert.Empty(t, env.publisher.For(other.ID))
}

func TestGetConversation_MarksIncomingRead(t *testing.T) {
	env := newTestEnv(t)
	u1 := testutil.CreateUser(t, env.db, models.UserRoleBrand, "U1")
	u2 := testutil.CreateUser(t, env.db, models.UserRoleInfluencer, "U2")
	base := time.Now().Add(-time.Hour)

	testutil.CreateMessage(t, env.db, u1, u2, "first", base)
	testutil.CreateMessage(t, env.db, u2, u1, "reply", base.Add(time.Minute))
	testutil.CreateMessage(t, env.db, u1, u2, "second", base.Add(2*time.Minute))

	conversation, err := env.services.MessageService.GetConversation(env.db, testutil.RC(u2), u1.ID)
	require.NoError(t, err)
	require.Len(t, conversation.Messages, 3)
	assert.Equal(t, "first", conversation.Messages[0].Content)
	assert.Equal(t, "second", conversation.Messages[2].Content)

	var unreadToU2, unreadToU1 int64
	require.NoError(t, env.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", u1.ID, u2.ID, false).Count(&unreadToU2).Error)
	require.NoError(t, env.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", u2.ID, u1.ID, false).Count(&unreadToU1).Error)
	assert.Zero(t, unreadToU2)
	assert.Equal(t, int64(1), unreadToU1)

	_, err = env.services.MessageService.GetConversation(env.db, testutil.RC(u2), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestGetInbox(t *testing.T) {
	env := newTestEnv(t)
	me := testutil.CreateUser(t, env.db, models.UserRoleBrand, "Me")
	alice := testutil.CreateUser(t, env.db, models.UserRoleInfluencer, "Alice")
	bob := testutil.CreateUser(t, env.db, models.UserRoleInfluencer, "Bob")
	base := time.Now().Add(-time.Hour)

	testutil.CreateMessage(t, env.db, alice, me, "a1", base)
	testutil.CreateMessage(t, env.db, alice, me, "a2", base.Add(time.Minute))
	testutil.CreateMessage(t, env.db, me, bob, "b1", base.Add(2*time.Minute))

	inbox, err := env.services.MessageService.GetInbox(env.db, testutil.RC(me), false)
	require.NoError(t, err)
	require.Len(t, inbox.Conversations, 2)
	assert.Equal(t, int64(2), inbox.TotalUnread)

	// новые переписки первыми
	assert.Equal(t, bob.ID, inbox.Conversations[0].User.ID)
	assert.Equal(t, "b1", inbox.Conversations[0].LastMessage.Content)
	assert.Zero(t, inbox.Conversations[0].UnreadCount)

	assert.Equal(t, "Alice", inbox.Conversations[1].User.Name)
	assert.Equal(t, string(models.UserRoleInfluencer), inbox.Conversations[1].User.Role)
	assert.Equal(t, "a2", inbox.Conversations[1].LastMessage.Content)
	assert.Equal(t, int64(2), inbox.Conversations[1].UnreadCount)

	unread, err := env.services.MessageService.GetInbox(env.db, testutil.RC(me), true)
	require.NoError(t, err)
	require.Len(t, unread.Conversations, 1)
	assert.Equal(t, alice.ID, unread.Conversations[0].User.ID)
	assert.Equal(t, int64(2), unread.TotalUnread)
}

func TestGetInbox_Empty(t *testing.T) {
	env := newTestEnv(t)
	me := testutil.CreateUser(t, env.db, models.UserRoleBrand, "Me")

	inbox, err := env.services.MessageService.GetInbox(env.db, testutil.RC(me), false)
	require.NoError(t, err)
	assert.NotNil(t, inbox.Conversations)
	assert.Empty(t, inbox.Conversations)
	assert.Zero(t, inbox.TotalUnread)
}

func TestGetInbox_LastMessageInEitherDirection(t *testing.T) {
	env := newTestEnv(t)
	me := testutil.CreateUser(t, env.db, models.UserRoleBrand, "Me")
	alice := testutil.CreateUser(t, env.db, models.UserRoleInfluencer, "Alice")
	base := time.Now().Add(-time.Hour)

	testutil.CreateMessage(t, env.db, alice, me, "question", base)
	testutil.CreateMessage(t, env.db, me, alice, "answer", base.Add(time.Minute))
	testutil.CreateMessage(t, env.db, alice, me, "thanks", base.Add(2*time.Minute))
	testutil.CreateMessage(t, env.db, me, alice, "you are welcome", base.Add(3*time.Minute))

	inbox, err := env.services.MessageService.GetInbox(env.db, testutil.RC(me), false)
	require.NoError(t, err)
	require.Len(t, inbox.Conversations, 1)
	assert.Equal(t, alice.ID, inbox.Conversations[0].User.ID)
	assert.Equal(t, "you are welcome", inbox.Conversations[0].LastMessage.Content)
	assert.Equal(t, int64(2), inbox.Conversations[0].UnreadCount)

	theirs, err := env.services.MessageService.GetInbox(env.db, testutil.RC(alice), false)
	require.NoError(t, err)
	require.Len(t, theirs.Conversations, 1)
	assert.Equal(t, me.ID, theirs.Conversations[0].User.ID)
	assert.Equal(t, int64(2), theirs.TotalUnread)
}
