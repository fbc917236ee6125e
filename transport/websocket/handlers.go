package websocket

import "fmt"

func (that *Server) handleCreateRoom(client *Client, _ *Message) error {
	return that.manager.CreateRoom(client)
}

func (that *Server) handleJoinRoom(client *Client, msg *Message) error {
	roomID, err := msg.RoomID()
	if err != nil {
		return fmt.Errorf("failed to read join target: %w", err)
	}

	return that.manager.JoinRoom(client, roomID)
}

func (that *Server) handleLeaveRoom(client *Client, _ *Message) error {
	return that.manager.LeaveRoom(client)
}

func (that *Server) handleMove(client *Client, msg *Message) error {
	cell, err := msg.Cell()
	if err != nil {
		return fmt.Errorf("failed to read move target: %w", err)
	}

	return that.manager.MakeTurn(client, cell)
}

func (that *Server) handleRestart(client *Client, _ *Message) error {
	return that.manager.Restart(client)
}
