package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/auth"
	"social-service/internal/mocks"
)

var caller = auth.Principal{ID: 1}

type testDeps struct {
	accounts *mocks.AccountServiceMock
	messages *mocks.MessagingServiceMock
	friends  *mocks.FriendshipServiceMock
	posts    *mocks.PostServiceMock
	events   *mocks.EventServiceMock
	storage  *mocks.StorageMock
}

func setupRouter() (*gin.Engine, testDeps) {
	gin.SetMode(gin.TestMode)
	deps := testDeps{
		accounts: new(mocks.AccountServiceMock),
		messages: new(mocks.MessagingServiceMock),
		friends:  new(mocks.FriendshipServiceMock),
		posts:    new(mocks.PostServiceMock),
		events:   new(mocks.EventServiceMock),
		storage:  new(mocks.StorageMock),
	}

	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		c.Set("userID", caller.ID)
		c.Next()
	}
	noLimit := func(c *gin.Context) { c.Next() }

	Router{
		Accounts: NewAccountHandler(deps.accounts, nil),
		Home:     NewHomeHandler(deps.messages),
		Posts:    NewPostHandler(deps.posts, deps.storage),
		Friends:  NewFriendHandler(deps.friends),
		Chat:     NewChatHandler(deps.messages),
		Events:   NewEventHandler(deps.events),
	}.Register(r, fakeAuth, noLimit)
	return r, deps
}

func formHeader() http.Header {
	return http.Header{"Content-Type": []string{"application/x-www-form-urlencoded"}}
}
