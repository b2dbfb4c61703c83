package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/brm5/taccom/internal/model"
	"github.com/brm5/taccom/pkg/request"
)

const httpTimeout = time.Second * 3

type RemoteAPI struct {
	logger *slog.Logger
	host   string
	client *http.Client

	login    string
	password string
}

func NewRemoteAPI(host string) *RemoteAPI {
	return &RemoteAPI{
		host:   host,
		logger: slog.Default().With("logger", "remote_api"),
		client: &http.Client{Transport: &http.Transport{ResponseHeaderTimeout: httpTimeout}},
	}
}

func (r *RemoteAPI) SetAuth(login, password string) {
	r.login = login
	r.password = password
}

func (r *RemoteAPI) getURL(path string) string {
	return fmt.Sprintf("http://%s%s", r.host, path)
}

func (r *RemoteAPI) request(url string) *request.Request {
	return request.New(r.client, r.logger).URL(r.getURL(url)).Auth(r.login, r.password)
}

// toAPIError maps a transport failure or a non-success status to the
// error the UI reports. Credential failures stay generic. The response
// body, when present, is consumed here so callers on the error path do
// not leak the connection.
func toAPIError(res *http.Response, err error) error {
	if res == nil {
		return fmt.Errorf("%w: %s", model.ErrTransport, err.Error())
	}

	if res.Body != nil {
		res.Body.Close()
	}

	switch res.StatusCode {
	case http.StatusUnauthorized:
		return model.ErrCredentials
	case http.StatusConflict:
		return model.ErrConflict
	case http.StatusForbidden:
		return model.ErrNotAuthorized
	case http.StatusBadRequest:
		return model.ErrValidation
	}

	if err != nil {
		return fmt.Errorf("%w: %s", model.ErrTransport, err.Error())
	}

	return nil
}

func (r *RemoteAPI) Login(ctx context.Context, login, password string) (*model.UserDTO, error) {
	r.SetAuth(login, password)

	res, err := r.request("/auth/login").Post().DoRes(ctx)
	if err != nil {
		return nil, toAPIError(res, err)
	}

	defer res.Body.Close()

	user := new(model.UserDTO)

	if err := decodeJSON(res, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *RemoteAPI) Register(ctx context.Context, login, password, name string, platoon model.Platoon) (*model.UserDTO, error) {
	body := map[string]string{
		"username": login,
		"password": password,
		"name":     name,
		"platoon":  string(platoon),
	}

	res, err := request.New(r.client, r.logger).
		URL(r.getURL("/auth/register")).
		Post().
		JSONBody(body).
		DoRes(ctx)
	if err != nil {
		return nil, toAPIError(res, err)
	}

	defer res.Body.Close()

	user := new(model.UserDTO)

	if err := decodeJSON(res, user); err != nil {
		return nil, err
	}

	r.SetAuth(login, password)

	return user, nil
}

func (r *RemoteAPI) GetMissions(ctx context.Context) ([]*model.MissionDTO, error) {
	dat := make([]*model.MissionDTO, 0)

	if err := r.request("/missions").GetJSON(ctx, &dat); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrTransport, err.Error())
	}

	return dat, nil
}

func (r *RemoteAPI) SaveMission(ctx context.Context, m *model.MissionDTO) (*model.MissionDTO, error) {
	res, err := r.request("/missions").Post().JSONBody(m).DoRes(ctx)
	if err != nil {
		return nil, toAPIError(res, err)
	}

	defer res.Body.Close()

	saved := new(model.MissionDTO)

	if err := decodeJSON(res, saved); err != nil {
		return nil, err
	}

	return saved, nil
}

func (r *RemoteAPI) DeleteMission(ctx context.Context, uid string) error {
	res, err := r.request("/missions/"+uid).Delete().DoRes(ctx)
	if err != nil {
		return toAPIError(res, err)
	}

	res.Body.Close()

	return nil
}

func decodeJSON(res *http.Response, obj any) error {
	if res.Body == nil {
		return errors.New("nil body")
	}

	return json.NewDecoder(res.Body).Decode(obj)
}
