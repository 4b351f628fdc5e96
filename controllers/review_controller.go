package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

func (r *ReviewController) GetReviews(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	reviews, err := r.reviews.List(c.Request.Context(), hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]dto.ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, convertToReviewResponse(rv))
	}
	response.Success(c, out)
}

func (r *ReviewController) GetReviewDetail(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "reviewId")
	if !ok {
		return
	}
	review, err := r.reviews.Get(c.Request.Context(), hotelID, reviewID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, convertToReviewResponse(*review))
}

// CreateReview godoc
// @Summary      Đánh giá booking đã xác nhận
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                      true  "Hotel ID"
// @Param        body  body  dto.CreateReviewRequest  true  "Review"
// @Success      201  {object}  response.Response{data=dto.ReviewResponse}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /hotels/{id}/reviews [post]
func (r *ReviewController) CreateReview(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	review, err := r.reviews.Submit(c.Request.Context(), middleware.CurrentUser(c), hotelID, services.ReviewInput{
		BookingID: req.Booking,
		Text:      req.Text,
		Rating:    req.Rating,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, convertToReviewResponse(*review))
}

func (r *ReviewController) UpdateReview(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "reviewId")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	review, err := r.reviews.Update(c.Request.Context(), middleware.CurrentUser(c), hotelID, reviewID, req.Text, req.Rating)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, convertToReviewResponse(*review))
}
