package server

import (
	"errors"
	"fmt"

	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Index renders the site-wide post feed, newest first.
func (s *Server) Index(c *fiber.Ctx) error {
	page, err := s.postService.IndexPage(c.UserContext(), parsePage(c))
	if err != nil {
		return err
	}
	return c.Render("posts/index", s.viewData(c, fiber.Map{
		"Title": "Latest posts",
		"Page":  page,
	}))
}

// GroupPosts renders the feed of a single group identified by slug.
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	group, page, err := s.postService.GroupPage(c.UserContext(), c.Params("slug"), parsePage(c))
	if err != nil {
		return err
	}
	return c.Render("posts/group_list", s.viewData(c, fiber.Map{
		"Title": group.Title,
		"Group": group,
		"Page":  page,
	}))
}

// Profile renders an author's page with their posts and post count.
func (s *Server) Profile(c *fiber.Ctx) error {
	author, page, err := s.postService.ProfilePage(c.UserContext(), c.Params("username"), parsePage(c))
	if err != nil {
		return err
	}

	uid, _ := currentUserID(c)
	return c.Render("posts/profile", s.viewData(c, fiber.Map{
		"Title":     "Posts of " + author.Username,
		"Author":    author,
		"Page":      page,
		"PostCount": page.TotalItems,
		"IsOwner":   uid == author.ID,
	}))
}

// PostDetail renders a single post.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return models.NewNotFoundError("Post", c.Params("id"))
	}

	post, err := s.postService.GetPost(c.UserContext(), uint(id))
	if err != nil {
		return err
	}

	uid, _ := currentUserID(c)
	return c.Render("posts/post_detail", s.viewData(c, fiber.Map{
		"Title":    postTitle(post),
		"Post":     post,
		"IsAuthor": uid == post.AuthorID,
	}))
}

// postTitle shortens the post text into a page title.
func postTitle(post *models.Post) string {
	const max = 30
	runes := []rune(post.Text)
	if len(runes) <= max {
		return post.Text
	}
	return string(runes[:max])
}

// renderPostForm renders the shared create/edit form template.
func (s *Server) renderPostForm(c *fiber.Ctx, data fiber.Map) error {
	groups, err := s.postService.Groups(c.UserContext())
	if err != nil {
		return err
	}
	data["Groups"] = groups
	return c.Render("posts/create_post", s.viewData(c, data))
}

// PostCreateForm renders the empty post creation form.
func (s *Server) PostCreateForm(c *fiber.Ctx) error {
	return s.renderPostForm(c, fiber.Map{
		"Title":  "New post",
		"IsEdit": false,
	})
}

// PostCreate handles the creation form submission. Invalid input re-renders
// the form with field messages; success redirects to the author's profile.
func (s *Server) PostCreate(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return models.NewUnauthorizedError("Login required")
	}

	input := service.PostFormInput{
		Text:     c.FormValue("text"),
		GroupRaw: c.FormValue("group"),
	}

	_, err := s.postService.CreatePost(c.UserContext(), uid, input)
	if err != nil {
		if appErr, ok := models.AsValidation(err); ok {
			return s.renderPostForm(c, fiber.Map{
				"Title":         "New post",
				"IsEdit":        false,
				"Errors":        appErr.Fields,
				"Text":          input.Text,
				"SelectedGroup": input.GroupRaw,
			})
		}
		return err
	}

	author, err := s.userService.GetUserByID(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return c.Redirect("/profile/"+author.Username+"/", fiber.StatusFound)
}

// PostEditForm renders the edit form pre-filled with the post's current
// values. Anyone but the author is sent back to the post page.
func (s *Server) PostEditForm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return models.NewNotFoundError("Post", c.Params("id"))
	}

	post, err := s.postService.GetPost(c.UserContext(), uint(id))
	if err != nil {
		return err
	}

	uid, _ := currentUserID(c)
	if post.AuthorID != uid {
		return c.Redirect(postURL(post.ID), fiber.StatusFound)
	}

	selected := ""
	if post.GroupID != nil {
		selected = fmt.Sprintf("%d", *post.GroupID)
	}
	return s.renderPostForm(c, fiber.Map{
		"Title":         "Edit post",
		"IsEdit":        true,
		"PostID":        post.ID,
		"Text":          post.Text,
		"SelectedGroup": selected,
	})
}

// PostEdit handles the edit form submission. Non-authors are redirected to
// the post page untouched; success lands there too.
func (s *Server) PostEdit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return models.NewNotFoundError("Post", c.Params("id"))
	}

	uid, ok := currentUserID(c)
	if !ok {
		return models.NewUnauthorizedError("Login required")
	}

	input := service.PostFormInput{
		Text:     c.FormValue("text"),
		GroupRaw: c.FormValue("group"),
	}

	_, err = s.postService.EditPost(c.UserContext(), uint(id), uid, input)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.ErrCodeForbidden {
			return c.Redirect(postURL(uint(id)), fiber.StatusFound)
		}
		if appErr, ok := models.AsValidation(err); ok {
			return s.renderPostForm(c, fiber.Map{
				"Title":         "Edit post",
				"IsEdit":        true,
				"PostID":        uint(id),
				"Errors":        appErr.Fields,
				"Text":          input.Text,
				"SelectedGroup": input.GroupRaw,
			})
		}
		return err
	}

	return c.Redirect(postURL(uint(id)), fiber.StatusFound)
}

func postURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}
