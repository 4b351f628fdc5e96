package dto

type CountryResponse struct {
	Name string `json:"name"`
}

type CityResponse struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Country CountryResponse `json:"country"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

// UploadRequest nhận ảnh dạng data URI khi không gửi multipart
type UploadRequest struct {
	Image  string `json:"image" binding:"required"`
	Folder string `json:"folder" binding:"omitempty,alphanum,max=50"`
}
