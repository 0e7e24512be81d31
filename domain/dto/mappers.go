package dto

import (
	"encoding/json"

	"buildboard/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AvatarURL: user.AvatarURL,
		BannerURL: user.BannerURL,
		Role:      user.Role,
		IsActive:  user.IsActive,
		Plan:      user.CurrentPlan(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func JobToJobResponse(job *models.Job) *JobResponse {
	if job == nil {
		return nil
	}
	skills := []string(job.Skills)
	if skills == nil {
		skills = []string{}
	}
	return &JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Site:        job.Site,
		StartDate:   job.StartDate,
		EndDate:     job.EndDate,
		Schedule:    job.Schedule,
		Status:      job.Status,
		Location:    job.Location,
		PayRate:     job.PayRate,
		Description: job.Description,
		ImageURL:    job.ImageURL,
		Skills:      skills,
		Latitude:    job.Latitude,
		Longitude:   job.Longitude,
		OwnerID:     job.OwnerID,
		IsPrivate:   job.IsPrivate,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}

func JobsToJobResponses(jobs []*models.Job) []*JobResponse {
	out := make([]*JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, JobToJobResponse(j))
	}
	return out
}

func UserToJobWorkerResponse(user *models.User) *JobWorkerResponse {
	return &JobWorkerResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Name:      user.DisplayName(),
		AvatarURL: user.AvatarURL,
	}
}

func ApplicationToResponse(app *models.Application) *ApplicationResponse {
	if app == nil {
		return nil
	}
	return &ApplicationResponse{
		ID:        app.ID,
		JobID:     app.JobID,
		ChatID:    app.ChatID,
		WorkerID:  app.WorkerID,
		ManagerID: app.ManagerID,
		Status:    app.Status,
		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
	}
}

func ApplicationsToResponses(apps []*models.Application) []*ApplicationResponse {
	out := make([]*ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, ApplicationToResponse(a))
	}
	return out
}

func ChatToChatResponse(chat *models.Chat) *ChatResponse {
	if chat == nil {
		return nil
	}
	return &ChatResponse{
		ID:        chat.ID,
		Title:     chat.Title,
		JobID:     chat.JobID,
		CreatedBy: chat.CreatedBy,
		MemberIDs: chat.MemberIDs(),
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}
}

func ChatsToChatResponses(chats []*models.Chat) []*ChatResponse {
	out := make([]*ChatResponse, 0, len(chats))
	for _, c := range chats {
		out = append(out, ChatToChatResponse(c))
	}
	return out
}

func MessageToMessageResponse(msg *models.Message) *MessageResponse {
	if msg == nil {
		return nil
	}
	return &MessageResponse{
		ID:        msg.ID,
		ChatID:    msg.ChatID,
		AuthorID:  msg.AuthorID,
		System:    msg.IsSystem(),
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	}
}

func MessagesToMessageResponses(msgs []*models.Message) []*MessageResponse {
	out := make([]*MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageToMessageResponse(m))
	}
	return out
}

func ProfileToProfileResponse(profile *models.Profile) *ProfileResponse {
	doc := json.RawMessage(profile.Document)
	if len(doc) == 0 {
		doc = json.RawMessage("{}")
	}
	resp := &ProfileResponse{
		UserID:   profile.UserID,
		Document: doc,
	}
	if !profile.UpdatedAt.IsZero() {
		updatedAt := profile.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

func ProjectToProjectResponse(p *models.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ProjectsToProjectResponses(projects []*models.Project) []*ProjectResponse {
	out := make([]*ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectToProjectResponse(p))
	}
	return out
}

func TaskToTaskResponse(t *models.Task) *TaskResponse {
	if t == nil {
		return nil
	}
	return &TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		JobID:       t.JobID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		AssigneeID:  t.AssigneeID,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func TasksToTaskResponses(tasks []*models.Task) []*TaskResponse {
	out := make([]*TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskToTaskResponse(t))
	}
	return out
}

func SubscriptionToResponse(sub *models.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		Plan:             sub.Plan,
		Status:           sub.Status,
		ClientSecret:     sub.ClientSecret,
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
	}
}
