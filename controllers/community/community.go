package communityController

import (
	"aimwell/middleware"
	"aimwell/models"
	communityValidator "aimwell/validators/community"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CommunityController handles the social feed: posts, comments and likes
type CommunityController struct {
	Db    *gorm.DB
	Roles middleware.RoleChecker
}

func NewCommunityController(db *gorm.DB, roles middleware.RoleChecker) *CommunityController {
	return &CommunityController{Db: db, Roles: roles}
}

// CreatePost publishes a community post
func (cc *CommunityController) CreatePost(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedPost").(*communityValidator.CreatePostRequest)

	post := models.Post{
		UserID:   userID,
		Title:    reqData.Title,
		Body:     reqData.Body,
		Category: reqData.Category,
	}
	if post.Category == "" {
		post.Category = "GENERAL"
	}

	if err := cc.Db.Create(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Post created successfully!", post)
}

// GetFeed lists posts newest first with comment and like counts
func (cc *CommunityController) GetFeed(c *fiber.Ctx) error {
	type PostWithCounts struct {
		models.Post
		AuthorName   string `json:"author_name"`
		CommentCount int64  `json:"comment_count"`
		LikeCount    int64  `json:"like_count"`
	}

	var posts []models.Post
	if err := cc.Db.Where("is_deleted = false").Order("created_at desc").Limit(50).Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch feed!", nil)
	}

	result := make([]PostWithCounts, len(posts))
	for i, p := range posts {
		var author models.User
		cc.Db.Where("id = ?", p.UserID).First(&author)

		var comments, likes int64
		cc.Db.Model(&models.Comment{}).Where("post_id = ? AND is_deleted = false", p.ID).Count(&comments)
		cc.Db.Model(&models.Like{}).Where("post_id = ? AND is_deleted = false", p.ID).Count(&likes)

		result[i] = PostWithCounts{Post: p, AuthorName: author.Name, CommentCount: comments, LikeCount: likes}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feed fetched successfully!", fiber.Map{
		"posts": result,
		"total": len(result),
	})
}

// AddComment comments on a post
func (cc *CommunityController) AddComment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	postID := c.Locals("postID").(int)
	reqData := c.Locals("validatedComment").(*communityValidator.CommentRequest)

	var post models.Post
	if err := cc.Db.Where("id = ? AND is_deleted = false", postID).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	comment := models.Comment{
		PostID: uint(postID),
		UserID: userID,
		Body:   reqData.Body,
	}
	if err := cc.Db.Create(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Comment added successfully!", comment)
}

// ToggleLike likes or unlikes a post
func (cc *CommunityController) ToggleLike(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	postID := c.Locals("postID").(int)

	var post models.Post
	if err := cc.Db.Where("id = ? AND is_deleted = false", postID).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	var like models.Like
	if err := cc.Db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error; err == nil {
		liked := like.IsDeleted // toggling back on if previously removed
		cc.Db.Model(&like).Update("is_deleted", !like.IsDeleted)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Like updated!", fiber.Map{"liked": liked})
	}

	like = models.Like{PostID: uint(postID), UserID: userID}
	if err := cc.Db.Create(&like).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to like post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Post liked!", fiber.Map{"liked": true})
}

// DeletePost soft-deletes a post; allowed for the owner or a moderator
func (cc *CommunityController) DeletePost(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	postID := c.Locals("postID").(int)

	var post models.Post
	if err := cc.Db.Where("id = ? AND is_deleted = false", postID).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	if post.UserID != userID {
		if err := cc.Roles.Require(userID, models.RoleModerator); err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own posts!", nil)
		}
	}

	if err := cc.Db.Model(&post).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post deleted successfully!", nil)
}
