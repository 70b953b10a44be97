package handlers

import (
	"github.com/gin-gonic/gin"
)

// Router groups every handler the service exposes.
type Router struct {
	Accounts *AccountHandler
	Home     *HomeHandler
	Posts    *PostHandler
	Friends  *FriendHandler
	Chat     *ChatHandler
	Events   *EventHandler
}

// Register mounts the public and authenticated routes. sendLimit guards the
// message send endpoints.
func (r Router) Register(engine gin.IRouter, authMiddleware, sendLimit gin.HandlerFunc) gin.IRoutes {
	engine.GET("/signup", r.Accounts.CredentialsForm)
	engine.POST("/signup", r.Accounts.Signup)
	engine.GET("/login", r.Accounts.CredentialsForm)
	engine.POST("/login", r.Accounts.Login)
	engine.GET("/logout", r.Accounts.Logout)

	authed := engine.Group("/", authMiddleware)

	authed.GET("/", r.Home.Home)
	authed.GET("/users", r.Accounts.ListUsers)

	authed.GET("/post/new", r.Posts.NewForm)
	authed.POST("/post/new", r.Posts.Create)
	authed.GET("/posts", r.Posts.List)
	authed.GET("/my_posts", r.Posts.ListMine)
	authed.GET("/post/:id/edit", r.Posts.EditForm)
	authed.POST("/post/:id/edit", r.Posts.Update)
	authed.POST("/post/:id/delete", r.Posts.Delete)

	authed.POST("/send_friend_request/:userId", r.Friends.SendRequest)
	authed.GET("/friend_requests", r.Friends.ListRequests)
	authed.POST("/approve_friend_request/:requestId", r.Friends.Approve)
	authed.GET("/friends", r.Friends.ListFriends)

	authed.GET("/chat/:userId", r.Chat.View)
	authed.POST("/chat/:userId", sendLimit, r.Chat.Post)
	authed.POST("/chat/:userId/send", sendLimit, r.Chat.SendAsync)
	authed.GET("/chat/:userId/messages", r.Chat.Poll)
	authed.GET("/chat/:userId/:msgId/edit", r.Chat.MessageForm)
	authed.POST("/chat/:userId/:msgId/edit", r.Chat.Edit)
	authed.GET("/chat/:userId/:msgId/delete", r.Chat.MessageForm)
	authed.POST("/chat/:userId/:msgId/delete", r.Chat.Delete)

	authed.GET("/dashboard", r.Events.Dashboard)
	authed.POST("/dashboard", r.Events.Create)
	authed.GET("/events", r.Events.List)
	authed.GET("/events/:id/edit", r.Events.EditForm)
	authed.POST("/events/:id/edit", r.Events.Update)
	authed.POST("/events/:id/delete", r.Events.Delete)

	return authed
}
